package services

import (
	"strings"
	"testing"

	"spendwise/internal/models"
	"spendwise/internal/testutil"
)

func TestAddRecurring(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)

		added, err := svc.AddRecurring("Rent", 1200, "Home", "", "monthly rent", models.FrequencyMonthly, "2024-04-01")
		testutil.AssertNoError(t, err)
		if added.ID == 0 {
			t.Fatal("expected non-zero template ID")
		}
		if !added.Active {
			t.Error("expected new template to be active")
		}
	})

	t.Run("rejects_unsupported_frequency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)

		_, err := svc.AddRecurring("Rent", 1200, "Home", "", "", models.Frequency("fortnightly"), "2024-04-01")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestListRecurring(t *testing.T) {
	t.Run("active_only_by_default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)

		testutil.CreateTestRecurring(t, db, "Rent", models.FrequencyMonthly, "2024-04-01")
		testutil.CreateTestRecurring(t, db, "Old gym", models.FrequencyMonthly, "2024-04-05", func(r *models.RecurringExpense) {
			r.Active = false
		})

		active, err := svc.ListRecurring(true)
		testutil.AssertNoError(t, err)
		if len(active) != 1 || active[0].Name != "Rent" {
			t.Errorf("expected only the active Rent template, got %+v", active)
		}

		all, err := svc.ListRecurring(false)
		testutil.AssertNoError(t, err)
		if len(all) != 2 {
			t.Errorf("expected inactive templates to remain queryable, got %d", len(all))
		}
	})

	t.Run("ordered_by_next_due_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)

		testutil.CreateTestRecurring(t, db, "Later", models.FrequencyMonthly, "2024-05-01")
		testutil.CreateTestRecurring(t, db, "Sooner", models.FrequencyMonthly, "2024-04-01")

		templates, err := svc.ListRecurring(true)
		testutil.AssertNoError(t, err)
		if len(templates) != 2 || templates[0].Name != "Sooner" {
			t.Errorf("expected next_due_date ASC ordering, got %+v", templates)
		}
	})
}

func TestProcessDue(t *testing.T) {
	t.Run("materializes_due_template", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)

		tpl := testutil.CreateTestRecurring(t, db, "Netflix", models.FrequencyMonthly, "2024-01-31", func(r *models.RecurringExpense) {
			r.Amount = 15.99
			r.Category = "Entertainment"
			r.Note = "family plan"
		})

		result, err := svc.ProcessDue("2024-02-01")
		testutil.AssertNoError(t, err)
		if result.Count != 1 {
			t.Fatalf("expected 1 processed template, got %d", result.Count)
		}
		if result.Processed[0].Name != "Netflix" || result.Processed[0].Amount != 15.99 {
			t.Errorf("unexpected processed entry: %+v", result.Processed[0])
		}

		// The materialized expense is dated as-of, not the due date,
		// and records provenance in the note and back-reference.
		var expenses []models.Expense
		if err := db.Find(&expenses).Error; err != nil {
			t.Fatalf("failed to load expenses: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("expected 1 materialized expense, got %d", len(expenses))
		}
		e := expenses[0]
		if e.Date != "2024-02-01" {
			t.Errorf("expected expense dated 2024-02-01, got %s", e.Date)
		}
		if !strings.HasPrefix(e.Note, "[Recurring: Netflix]") {
			t.Errorf("expected provenance prefix in note, got %q", e.Note)
		}
		if e.RecurringID == nil || *e.RecurringID != tpl.ID {
			t.Errorf("expected recurring back-reference %d, got %v", tpl.ID, e.RecurringID)
		}

		// Jan 31 advances one month with the day clamped to February's
		// last day; 2024 is a leap year.
		var reloaded models.RecurringExpense
		if err := db.First(&reloaded, tpl.ID).Error; err != nil {
			t.Fatalf("failed to reload template: %v", err)
		}
		if reloaded.NextDueDate != "2024-02-29" {
			t.Errorf("expected next due date 2024-02-29, got %s", reloaded.NextDueDate)
		}
	})

	t.Run("second_call_before_new_due_date_is_a_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)

		testutil.CreateTestRecurring(t, db, "Netflix", models.FrequencyMonthly, "2024-01-31")

		first, err := svc.ProcessDue("2024-02-01")
		testutil.AssertNoError(t, err)
		if first.Count != 1 {
			t.Fatalf("expected first call to process 1 template, got %d", first.Count)
		}

		second, err := svc.ProcessDue("2024-02-01")
		testutil.AssertNoError(t, err)
		if second.Count != 0 {
			t.Errorf("expected nothing due on the second call, got %d", second.Count)
		}

		var count int64
		db.Model(&models.Expense{}).Count(&count)
		if count != 1 {
			t.Errorf("expected exactly 1 materialized expense, got %d", count)
		}
	})

	t.Run("overdue_template_advances_one_step_per_call", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)

		// Three days overdue for a daily template: catching up takes
		// repeated calls, one step each.
		tpl := testutil.CreateTestRecurring(t, db, "Coffee", models.FrequencyDaily, "2024-03-01")

		for i, wantDue := range []string{"2024-03-02", "2024-03-03", "2024-03-04"} {
			result, err := svc.ProcessDue("2024-03-03")
			testutil.AssertNoError(t, err)
			if result.Count != 1 {
				t.Fatalf("call %d: expected 1 processed, got %d", i+1, result.Count)
			}

			var reloaded models.RecurringExpense
			if err := db.First(&reloaded, tpl.ID).Error; err != nil {
				t.Fatalf("failed to reload template: %v", err)
			}
			if reloaded.NextDueDate != wantDue {
				t.Fatalf("call %d: expected next due %s, got %s", i+1, wantDue, reloaded.NextDueDate)
			}
		}

		// Now 2024-03-04 > as-of, so the template is caught up.
		result, err := svc.ProcessDue("2024-03-03")
		testutil.AssertNoError(t, err)
		if result.Count != 0 {
			t.Errorf("expected caught-up template to be skipped, got %d", result.Count)
		}
	})

	t.Run("inactive_templates_are_skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)

		testutil.CreateTestRecurring(t, db, "Cancelled", models.FrequencyMonthly, "2024-01-01", func(r *models.RecurringExpense) {
			r.Active = false
		})

		result, err := svc.ProcessDue("2024-02-01")
		testutil.AssertNoError(t, err)
		if result.Count != 0 {
			t.Errorf("expected inactive template to be skipped, got %d", result.Count)
		}
	})

	t.Run("not_yet_due_templates_are_untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)

		tpl := testutil.CreateTestRecurring(t, db, "Rent", models.FrequencyMonthly, "2024-03-01")

		result, err := svc.ProcessDue("2024-02-15")
		testutil.AssertNoError(t, err)
		if result.Count != 0 {
			t.Fatalf("expected nothing due, got %d", result.Count)
		}

		var reloaded models.RecurringExpense
		if err := db.First(&reloaded, tpl.ID).Error; err != nil {
			t.Fatalf("failed to reload template: %v", err)
		}
		if reloaded.NextDueDate != "2024-03-01" {
			t.Errorf("due date moved for a template that was not due: %s", reloaded.NextDueDate)
		}
	})

	t.Run("malformed_stored_date_is_fatal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)

		testutil.CreateTestRecurring(t, db, "Corrupt", models.FrequencyMonthly, "garbage")

		_, err := svc.ProcessDue("2024-02-01")
		testutil.AssertAppError(t, err, "BAD_STORED_DATE")
	})

	t.Run("rejects_malformed_as_of_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)

		_, err := svc.ProcessDue("02/01/2024")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}
