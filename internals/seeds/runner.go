package seeds

import (
	"gorm.io/gorm"

	classseed "schoolhub_backend/internals/seeds/school/classes"
)

// RunAllSeeds loads the reference data a fresh deployment needs. Every seeder
// is idempotent, so the runner can be enabled on every boot.
func RunAllSeeds(db *gorm.DB) {
	classseed.SeedClassFeeRulesFromJSON(db, "internals/seeds/school/classes/data_class_fee_rules.json")
}
