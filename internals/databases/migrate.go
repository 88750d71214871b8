package database

import (
	"log"

	feemodel "schoolhub_backend/internals/features/finance/feeledger/model"
	classModel "schoolhub_backend/internals/features/school/classes/model"
	studentModel "schoolhub_backend/internals/features/school/students/model"
)

// Migrate applies the schema. gen_random_uuid() needs Postgres 13+.
func Migrate() {
	if err := DB.AutoMigrate(
		&studentModel.Student{},
		&classModel.ClassFeeRule{},
		&feemodel.StudentFee{},
		&feemodel.FeePayment{},
		&feemodel.GatewayOrder{},
	); err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}
	log.Println("✅ migrations applied")
}
