package classseed

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/classes/model"
)

type ClassFeeRuleSeed struct {
	Class             string `json:"class"`
	TuitionFirstTerm  int    `json:"tuition_first_term"`
	TuitionSecondTerm int    `json:"tuition_second_term"`
	Transport         int    `json:"transport"`
	Kit               int    `json:"kit"`
	Note              string `json:"note"`
}

// SeedClassFeeRulesFromJSON inserts the default fee structure per class.
// Existing classes are skipped, so running the seed twice is safe.
func SeedClassFeeRulesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("[ERROR] could not read seed file: %v", err)
		return
	}

	var seeds []ClassFeeRuleSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		log.Printf("[ERROR] could not decode seed file: %v", err)
		return
	}

	for _, seed := range seeds {
		var existing model.ClassFeeRule
		if err := db.Where("class_fee_rule_class = ?", seed.Class).First(&existing).Error; err == nil {
			log.Printf("ℹ️ fee rule for %q already exists, skipping", seed.Class)
			continue
		}

		note := seed.Note
		rule := model.ClassFeeRule{
			ClassFeeRuleClass:             seed.Class,
			ClassFeeRuleTuitionFirstTerm:  seed.TuitionFirstTerm,
			ClassFeeRuleTuitionSecondTerm: seed.TuitionSecondTerm,
			ClassFeeRuleTransport:         seed.Transport,
			ClassFeeRuleKit:               seed.Kit,
		}
		if note != "" {
			rule.ClassFeeRuleNote = &note
		}

		if err := db.Create(&rule).Error; err != nil {
			log.Printf("[ERROR] insert fee rule %q: %v", seed.Class, err)
		} else {
			log.Printf("✅ seeded fee rule for %q", seed.Class)
		}
	}
}
