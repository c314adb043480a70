package database

// Medication is a catalog entry in the pharmacy inventory.
type Medication struct {
	ID             int64   `json:"id"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	NormalizedName string  `json:"normalized_name"`
	Category       string  `json:"category"`
	Manufacturer   string  `json:"manufacturer,omitempty"`
	Combination    string  `json:"combination,omitempty"`
	Strength       string  `json:"strength,omitempty"`
	Form           string  `json:"form,omitempty"`
	PurchasePrice  float64 `json:"purchase_price"`
	SellingPrice   float64 `json:"selling_price"`
	TotalStock     int     `json:"total_stock"`
	AvailableStock int     `json:"available_stock"`
	CreatedAt      string  `json:"created_at,omitempty"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}

// MedicationBatch is a received lot of a medication.
type MedicationBatch struct {
	ID               int64   `json:"id"`
	MedicationID     int64   `json:"medication_id"`
	MedicationName   string  `json:"medication_name,omitempty"`
	BatchNumber      string  `json:"batch_number"`
	ReceivedQuantity int     `json:"received_quantity"`
	CurrentQuantity  int     `json:"current_quantity"`
	ExpiryDate       string  `json:"expiry_date"`
	PurchasePrice    float64 `json:"purchase_price"`
	SellingPrice     float64 `json:"selling_price"`
	CreatedAt        string  `json:"created_at,omitempty"`
}

// Patient is a registered patient record.
type Patient struct {
	ID             int64  `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name"`
	Gender         string `json:"gender,omitempty"`
	DateOfBirth    string `json:"date_of_birth,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	BloodGroup     string `json:"blood_group,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

// CategoryRule is a stored keyword rule for category derivation.
type CategoryRule struct {
	ID       int64  `json:"id"`
	Priority int    `json:"priority"`
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
	Active   bool   `json:"active"`
}

// ImportRun records one upload processed by the import pipeline.
type ImportRun struct {
	ID             int64  `json:"id"`
	RunUUID        string `json:"run_uuid"`
	Source         string `json:"source"`
	Filename       string `json:"filename,omitempty"`
	ProcessedCount int    `json:"processed_count"`
	SuccessCount   int    `json:"success_count"`
	ErrorCount     int    `json:"error_count"`
	SkippedCount   int    `json:"skipped_count"`
	StartedAt      string `json:"started_at,omitempty"`
	FinishedAt     string `json:"finished_at,omitempty"`
}
