// cmd/seeduser/main.go crea o actualiza los datos de demo: operadores, una caja,
// propietarios y un catálogo mínimo.
// Uso: go run ./cmd/seeduser
package main

import (
	"context"
	"os"
	"time"

	"github.com/HostingCuenca/vet-system/internal/config"
	"github.com/HostingCuenca/vet-system/internal/infra"
	"github.com/HostingCuenca/vet-system/internal/model"
	"github.com/HostingCuenca/vet-system/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const demoPassword = "123456"

func strPtr(s string) *string { return &s }

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect error")
	}
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}

	users := repository.NewUserRepository(db)
	for _, u := range []model.User{
		{Email: "admin@vetclinic.com", Name: "Dr. Admin Sistema", Role: "ADMIN"},
		{Email: "veterinario@vetclinic.com", Name: "Dr. María Veterinaria", Role: "VETERINARIAN"},
		{Email: "recepcionista@vetclinic.com", Name: "Ana Recepcionista", Role: "RECEPTIONIST"},
	} {
		u.PasswordHash = string(hash)
		u.Active = true
		if err := users.Upsert(ctx, &u); err != nil {
			log.Fatal().Err(err).Str("email", u.Email).Msg("upsert user")
		}
		log.Info().Str("email", u.Email).Str("role", u.Role).Msg("operator ready")
	}

	seed(db.WithContext(ctx), &model.Owner{}, "identification_number = ?", "12345678", &model.Owner{
		Name: "Juan Pérez", IdentificationNumber: "12345678",
		Phone: strPtr("+57 310 111 2222"), Email: strPtr("juan@email.com"),
	})
	seed(db.WithContext(ctx), &model.Owner{}, "identification_number = ?", "87654321", &model.Owner{
		Name: "María García", IdentificationNumber: "87654321",
		Phone: strPtr("+57 320 333 4444"), Email: strPtr("maria@email.com"),
	})

	seed(db.WithContext(ctx), &model.CashRegister{}, "name = ?", "Caja Principal", &model.CashRegister{
		Name: "Caja Principal", Location: "Recepción", Active: true,
	})

	seed(db.WithContext(ctx), &model.Product{}, "name = ?", "Amoxicilina 250mg", &model.Product{
		Name: "Amoxicilina 250mg", Category: strPtr("Medicamentos"), UnitType: "TABLETS",
		UnitPrice: decimal.NewFromInt(1500), CurrentStock: 100, MinStock: 20, Active: true,
	})
	seed(db.WithContext(ctx), &model.Product{}, "name = ?", "Vacuna Triple Canina", &model.Product{
		Name: "Vacuna Triple Canina", Category: strPtr("Vacunas"), UnitType: "ML",
		UnitPrice: decimal.NewFromInt(25000), CurrentStock: 50, MinStock: 10, Active: true,
	})

	seed(db.WithContext(ctx), &model.ServiceCatalog{}, "name = ?", "Consulta general", &model.ServiceCatalog{
		Name: "Consulta general", Category: strPtr("Consultas"), Price: decimal.NewFromInt(30000), Active: true,
	})
	seed(db.WithContext(ctx), &model.ServiceCatalog{}, "name = ?", "Baño y peluquería", &model.ServiceCatalog{
		Name: "Baño y peluquería", Category: strPtr("Estética"), Price: decimal.NewFromInt(45000), Active: true,
	})

	log.Info().Str("password", demoPassword).Msg("demo data seeded")
}

// seed inserts row unless a record matching query already exists.
func seed(db *gorm.DB, probe interface{}, query string, arg interface{}, row interface{}) {
	var count int64
	if err := db.Model(probe).Where(query, arg).Count(&count).Error; err != nil {
		log.Fatal().Err(err).Msgf("seed lookup %v", arg)
	}
	if count > 0 {
		return
	}
	if err := db.Create(row).Error; err != nil {
		log.Fatal().Err(err).Msgf("seed insert %v", arg)
	}
	log.Info().Msgf("seeded %v", arg)
}
