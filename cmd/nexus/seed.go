// cmd/nexus/seed.go
package main

import (
	"errors"
	"fmt"

	"github.com/dangerclosesec/nexus/internal/model"
	"gorm.io/gorm"
)

// seed inserts a demo organization with an admin user, a technician, two
// assets and a work order. Re-running is a no-op once the organization
// exists.
func seed(db *gorm.DB) error {
	var existing model.Organization
	err := db.Where("name = ?", "Default Organization").First(&existing).Error
	if err == nil {
		fmt.Println("Demo data already present, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		org := &model.Organization{
			Name:        "Default Organization",
			Description: "Default organization for testing",
			Email:       "admin@example.com",
			Timezone:    "UTC",
		}
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		admin := &model.User{
			Email:          "user@example.com",
			Name:           "Default User",
			Role:           model.RoleAdmin,
			IsActive:       true,
			OrganizationID: &org.ID,
		}
		technician := &model.User{
			Email:          "tech@example.com",
			Name:           "Demo Technician",
			Role:           model.RoleUser,
			IsActive:       true,
			OrganizationID: &org.ID,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		if err := tx.Create(technician).Error; err != nil {
			return err
		}

		pump := &model.Asset{
			Name:           "Main Water Pump",
			Description:    "Primary circulation pump, building A",
			Type:           "Pump",
			Location:       "Basement / Mechanical Room",
			Status:         model.AssetActive,
			Criticality:    model.CriticalityHigh,
			Manufacturer:   "Grundfos",
			Model:          "CR 45-2",
			SerialNumber:   "GF-2031-0042",
			ImageURLs:      model.StringList{},
			FileURLs:       model.StringList{},
			OrganizationID: org.ID,
			CreatedByID:    admin.ID,
		}
		compressor := &model.Asset{
			Name:           "Air Compressor 2",
			Description:    "Backup compressor, workshop",
			Type:           "Compressor",
			Location:       "Workshop",
			Status:         model.AssetUnderMaintenance,
			Criticality:    model.CriticalityMedium,
			ImageURLs:      model.StringList{},
			FileURLs:       model.StringList{},
			OrganizationID: org.ID,
			CreatedByID:    admin.ID,
		}
		if err := tx.Create(pump).Error; err != nil {
			return err
		}
		if err := tx.Create(compressor).Error; err != nil {
			return err
		}

		wo := &model.WorkOrder{
			WorkOrderNumber: model.FormatWorkOrderNumber(1),
			Title:           "Inspect pump seals",
			Description:     "Quarterly seal inspection",
			Status:          model.WorkOrderOpen,
			Priority:        model.CriticalityHigh,
			Type:            model.TypePreventiveMaintenance,
			OrganizationID:  org.ID,
			AssetID:         &pump.ID,
			AssignedToID:    &technician.ID,
			CreatedByID:     admin.ID,
		}
		if err := tx.Create(wo).Error; err != nil {
			return err
		}

		fmt.Printf("Created organization %s with %d users, %d assets, 1 work order\n", org.Name, 2, 2)
		return nil
	})
}
