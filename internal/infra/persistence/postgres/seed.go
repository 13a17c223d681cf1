package postgres

import (
	"context"
	"log/slog"

	"saborreal/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	demoUserEmail    = "demo@saborreal.com"
	demoUserPassword = "demo123"
)

// seedDemoData loads the demo catalog and a demo customer for local
// development. Products are seeded only into an empty catalog; the demo user
// is upserted on every start.
func seedDemoData(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	var productCount int64
	if err := db.WithContext(ctx).Model(&model.ProductModel{}).Count(&productCount).Error; err != nil {
		return errors.Wrap(err, "failed to count products")
	}

	if productCount == 0 {
		demo := []*model.ProductModel{
			{
				Name:        "Pan Francés",
				Description: "Clásico y crujiente",
				Price:       decimal.RequireFromString("0.50"),
				Stock:       200,
				Active:      true,
				Category:    "pan",
			},
			{
				Name:        "Croissant",
				Description: "Mantecoso y delicado",
				Price:       decimal.RequireFromString("2.20"),
				Stock:       80,
				Active:      true,
				Category:    "postre",
			},
			{
				Name:        "Torta de Chocolate",
				Description: "8 porciones",
				Price:       decimal.RequireFromString("25.00"),
				Stock:       12,
				Active:      true,
				Category:    "postre",
			},
		}

		if err := db.WithContext(ctx).Create(&demo).Error; err != nil {
			return errors.Wrap(err, "failed to seed demo products")
		}

		logger.Info("Seeded demo catalog", slog.Int("products", len(demo)))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "failed to hash demo password")
	}

	var existing model.UserModel
	err = db.WithContext(ctx).Where("email = ?", demoUserEmail).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		demoUser := &model.UserModel{
			Email:        demoUserEmail,
			Name:         "Cliente Demo",
			PasswordHash: string(hash),
			Role:         "customer",
		}
		if err := db.WithContext(ctx).Create(demoUser).Error; err != nil {
			return errors.Wrap(err, "failed to seed demo user")
		}

		logger.Info("Seeded demo user", slog.String("email", demoUserEmail))
	case err != nil:
		return errors.Wrap(err, "failed to look up demo user")
	}

	return nil
}
