package staff

import (
	"testing"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/models"
	"retail-edge-pos/internal/testutil"
)

func TestLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "Admin", "admin@shop.com", "Abcdef1!", models.RoleAdmin, true)
	member := testutil.CreateUser(t, db, "Meera", "meera@shop.com", "Abcdef1!", models.RoleStaff, false)
	testutil.CreateUser(t, db, "Arjun", "arjun@shop.com", "Abcdef1!", models.RoleStaff, true)

	list, err := ListStaff(db)
	if err != nil {
		t.Fatalf("ListStaff failed: %v", err)
	}
	if len(list) != 2 || list[0].FullName != "Arjun" {
		t.Errorf("Expected only staff, sorted by name, got %+v", list)
	}

	approved, err := Approve(db, member.ID)
	if err != nil || !approved.Approved {
		t.Fatalf("Approve failed: %v, %+v", err, approved)
	}

	deactivated, err := Deactivate(db, member.ID)
	if err != nil || deactivated.Approved {
		t.Fatalf("Deactivate failed: %v, %+v", err, deactivated)
	}
	var reloaded models.User
	db.First(&reloaded, member.ID)
	if reloaded.Approved {
		t.Error("Deactivation was not persisted")
	}

	if err := Delete(db, member.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := Approve(db, member.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("Expected not found after delete, got %v", err)
	}
}

func TestAdminsAreNotStaff(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.CreateUser(t, db, "Admin", "admin@shop.com", "Abcdef1!", models.RoleAdmin, true)

	if _, err := Deactivate(db, admin.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("Expected admins to be out of reach, got %v", err)
	}
	if err := Delete(db, admin.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("Expected admins to be out of reach, got %v", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("Admin must survive, users left: %d", count)
	}
}
