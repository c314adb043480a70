package importer

import "strings"

// MedicationColumns holds the source column index of each canonical
// medication field, -1 when the sheet has no matching header.
type MedicationColumns struct {
	Name          int
	Combination   int
	Manufacturer  int
	Strength      int
	Form          int
	Category      int
	BatchNumber   int
	Quantity      int
	Expiry        int
	PurchasePrice int
	SellingPrice  int
}

// PatientColumns holds the source column index of each canonical patient
// field, -1 when the sheet has no matching header.
type PatientColumns struct {
	Name        int
	Gender      int
	DateOfBirth int
	Phone       int
	Address     int
	BloodGroup  int
}

// HasName reports whether the sheet carries the required name column.
func (c MedicationColumns) HasName() bool { return c.Name >= 0 }

// HasName reports whether the sheet carries the required name column.
func (c PatientColumns) HasName() bool { return c.Name >= 0 }

// normalizeHeader lower-cases a header and strips all whitespace, so that
// "Batch No." and "batchno." compare equal.
func normalizeHeader(header string) string {
	lower := strings.ToLower(header)
	return strings.Join(strings.Fields(lower), "")
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, substrings []string) bool {
	for _, substr := range substrings {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

// MapMedicationColumns assigns header columns to canonical medication fields
// by substring matching on the normalized header text. When several headers
// match the same field the last one wins.
func MapMedicationColumns(headers []string) MedicationColumns {
	cols := MedicationColumns{
		Name:          -1,
		Combination:   -1,
		Manufacturer:  -1,
		Strength:      -1,
		Form:          -1,
		Category:      -1,
		BatchNumber:   -1,
		Quantity:      -1,
		Expiry:        -1,
		PurchasePrice: -1,
		SellingPrice:  -1,
	}

	for i, header := range headers {
		h := normalizeHeader(header)
		if h == "" {
			continue
		}

		switch {
		case containsAny(h, []string{"medicine", "drugname", "productname", "itemname"}):
			cols.Name = i
		case containsAny(h, []string{"combination", "composition", "generic", "salt"}):
			cols.Combination = i
		case containsAny(h, []string{"manufacturer", "company", "brand", "marketer"}):
			cols.Manufacturer = i
		case containsAny(h, []string{"strength", "dosage", "dose"}):
			cols.Strength = i
		case containsAny(h, []string{"form", "producttype", "type", "product"}):
			cols.Form = i
		case containsAny(h, []string{"category", "class"}):
			cols.Category = i
		case containsAny(h, []string{"batch", "lot"}):
			cols.BatchNumber = i
		case containsAny(h, []string{"quantity", "qty", "stock", "units"}):
			cols.Quantity = i
		case containsAny(h, []string{"expiry", "expiration", "expdate", "exp."}):
			cols.Expiry = i
		case h == "mrp" || containsAny(h, []string{"sellingprice", "saleprice", "retail"}):
			cols.SellingPrice = i
		case containsAny(h, []string{"purchaseprice", "costprice", "buyingprice", "price"}):
			cols.PurchasePrice = i
		}
	}

	return cols
}

// MapPatientColumns assigns header columns to canonical patient fields.
// Same matching rules as MapMedicationColumns.
func MapPatientColumns(headers []string) PatientColumns {
	cols := PatientColumns{
		Name:        -1,
		Gender:      -1,
		DateOfBirth: -1,
		Phone:       -1,
		Address:     -1,
		BloodGroup:  -1,
	}

	for i, header := range headers {
		h := normalizeHeader(header)
		if h == "" {
			continue
		}

		switch {
		case containsAny(h, []string{"patientname", "fullname", "name"}) && !strings.Contains(h, "father") && !strings.Contains(h, "guardian"):
			cols.Name = i
		case containsAny(h, []string{"gender", "sex"}):
			cols.Gender = i
		case containsAny(h, []string{"dateofbirth", "dob", "birth"}):
			cols.DateOfBirth = i
		case containsAny(h, []string{"phone", "mobile", "contact"}):
			cols.Phone = i
		case containsAny(h, []string{"address", "city", "residence"}):
			cols.Address = i
		case containsAny(h, []string{"bloodgroup", "blood"}):
			cols.BloodGroup = i
		}
	}

	return cols
}

// CellAt returns the trimmed value of the column in the row, or "" when the
// column is unmapped or the row is too short.
func CellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// IsEmptyRow reports whether every cell in the row is blank.
func IsEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
