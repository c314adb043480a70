package classification

import "testing"

// TestDerive verifies keyword routing into the closed label set.
func TestDerive(t *testing.T) {
	c := NewCategoryClassifier(nil)

	cases := []struct {
		name        string
		combination string
		form        string
		want        string
	}{
		{"Amoxicillin Injection", "", "", CategoryInjectable},
		{"Ceftriaxone", "", "1g Vial", CategoryInjectable},
		{"Paracetamol 500", "", "Tablet", CategoryTablet},
		{"Omeprazole", "", "Capsule", CategoryCapsule},
		{"Cough Relief", "dextromethorphan", "Syrup", CategoryLiquid},
		{"Betadine", "", "Ointment", CategoryTopical},
		{"Refresh Tears", "", "Eye Drops", CategoryDrops},
		{"Salbutamol", "", "Inhaler", CategoryRespiratory},
		{"ORS", "", "Sachet", CategoryPowder},
		{"Mystery Compound", "", "", CategoryGeneralMedicine},
	}

	for _, tc := range cases {
		got := c.Derive(tc.name, tc.combination, tc.form)
		if got != tc.want {
			t.Errorf("Derive(%q, %q, %q) = %q, want %q",
				tc.name, tc.combination, tc.form, got, tc.want)
		}
	}
}

// TestDerive_Deterministic verifies repeated derivation is stable.
func TestDerive_Deterministic(t *testing.T) {
	c := NewCategoryClassifier(nil)

	first := c.Derive("Dexamethasone Injection Tablet", "", "")
	for i := 0; i < 10; i++ {
		if got := c.Derive("Dexamethasone Injection Tablet", "", ""); got != first {
			t.Fatalf("derivation changed between runs: %q vs %q", got, first)
		}
	}
}

// TestDerive_RuleOrder verifies that priority decides when several keywords
// match the same text.
func TestDerive_RuleOrder(t *testing.T) {
	rules := []Rule{
		{Priority: 2, Keyword: "acme", Category: CategoryTablet, Active: true},
		{Priority: 1, Keyword: "acme", Category: CategoryLiquid, Active: true},
	}
	c := NewCategoryClassifier(rules)

	if got := c.Derive("Acme Mix", "", ""); got != CategoryLiquid {
		t.Errorf("expected the lower-priority-number rule to win, got %q", got)
	}
}

// TestDerive_InactiveRulesSkipped verifies inactive rules are ignored.
func TestDerive_InactiveRulesSkipped(t *testing.T) {
	rules := []Rule{
		{Priority: 1, Keyword: "tablet", Category: CategoryTablet, Active: false},
	}
	c := NewCategoryClassifier(rules)

	if got := c.Derive("Some Tablet", "", ""); got != CategoryGeneralMedicine {
		t.Errorf("inactive rule applied, got %q", got)
	}
}

// TestSetRules_EmptyInstallsDefaults verifies the fallback rule table.
func TestSetRules_EmptyInstallsDefaults(t *testing.T) {
	c := NewCategoryClassifier([]Rule{})
	if len(c.Rules()) == 0 {
		t.Fatal("expected default rules to be installed")
	}
	if got := c.Derive("Insulin Injection", "", ""); got != CategoryInjectable {
		t.Errorf("defaults not applied, got %q", got)
	}
}
