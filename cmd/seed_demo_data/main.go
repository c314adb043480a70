// Command seed_demo_data fills a database with plausible demo medications,
// batches and patients for local development.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"hospitalserver/classification"
	"hospitalserver/database"
	"hospitalserver/normalization"
)

var drugNames = []string{
	"Amoxicillin", "Azithromycin", "Paracetamol", "Ibuprofen", "Cetirizine",
	"Metformin", "Pantoprazole", "Atorvastatin", "Amlodipine", "Losartan",
	"Ceftriaxone", "Insulin Glargine", "Salbutamol", "Budesonide", "Diclofenac",
}

var strengths = []string{"250mg", "500mg", "650mg", "10mg", "20mg", "40mg", "100mg"}

var forms = []string{"Tablet", "Capsule", "Syrup", "Injection", "Cream", "Drops", "Inhaler"}

var bloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func main() {
	dbPath := flag.String("db", "pharmacy.db", "path to the SQLite database")
	medicationCount := flag.Int("medications", 50, "number of demo medications")
	patientCount := flag.Int("patients", 30, "number of demo patients")
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	flag.Parse()

	gofakeit.Seed(*seed)

	db, err := database.NewServiceDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	classifier := classification.NewCategoryClassifier(nil)

	created := 0
	for i := 0; i < *medicationCount; i++ {
		name := fmt.Sprintf("%s %s %s",
			gofakeit.RandomString(drugNames),
			gofakeit.RandomString(strengths),
			gofakeit.RandomString(forms))
		normalized := normalization.NormalizeName(name)

		existing, err := db.FindMedicationByNormalizedName(normalized)
		if err != nil {
			log.Fatalf("Lookup failed: %v", err)
		}
		if existing != nil {
			continue
		}

		purchase := gofakeit.Price(1, 200)
		m := &database.Medication{
			Code:           fmt.Sprintf("%s-%d", normalization.CodePrefix(name, 8), gofakeit.Number(100000, 999999)),
			Name:           name,
			NormalizedName: normalized,
			Category:       classifier.Derive(name, "", ""),
			Manufacturer:   gofakeit.Company(),
			PurchasePrice:  purchase,
			SellingPrice:   purchase * 1.4,
		}
		if err := db.CreateMedication(m); err != nil {
			log.Fatalf("Failed to create medication: %v", err)
		}

		for b := 0; b < gofakeit.Number(1, 3); b++ {
			qty := gofakeit.Number(10, 500)
			batch := &database.MedicationBatch{
				MedicationID:     m.ID,
				BatchNumber:      strings.ToUpper(gofakeit.LetterN(1)) + gofakeit.Numerify("###"),
				ReceivedQuantity: qty,
				CurrentQuantity:  qty,
				ExpiryDate:       gofakeit.DateRange(time.Now(), time.Now().AddDate(3, 0, 0)).Format("2006-01-02"),
				PurchasePrice:    m.PurchasePrice,
				SellingPrice:     m.SellingPrice,
			}
			if err := db.CreateBatch(batch); err != nil {
				// random batch numbers can collide, just move on
				continue
			}
			if err := db.AddMedicationStock(m.ID, qty); err != nil {
				log.Fatalf("Failed to add stock: %v", err)
			}
		}
		created++
	}
	log.Printf("Created %d demo medications", created)

	createdPatients := 0
	for i := 0; i < *patientCount; i++ {
		name := gofakeit.Name()
		p := &database.Patient{
			Code:           fmt.Sprintf("%s-%d", normalization.CodePrefix(name, 8), gofakeit.Number(100000, 999999)),
			Name:           name,
			NormalizedName: normalization.NormalizeName(name),
			Gender:         gofakeit.RandomString([]string{"M", "F"}),
			DateOfBirth:    gofakeit.DateRange(time.Now().AddDate(-90, 0, 0), time.Now().AddDate(-1, 0, 0)).Format("2006-01-02"),
			Phone:          gofakeit.Phone(),
			Address:        gofakeit.Address().Address,
			BloodGroup:     gofakeit.RandomString(bloodGroups),
		}
		if err := db.CreatePatient(p); err != nil {
			log.Fatalf("Failed to create patient: %v", err)
		}
		createdPatients++
	}
	log.Printf("Created %d demo patients", createdPatients)
}
