package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"petmarket/internal/database"
	"petmarket/internal/domain"
	"petmarket/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "petmarket.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM conversations")
	db.Exec("DELETE FROM payment_records")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM pets")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	petsRepo := repository.NewPetRepository(db)
	servicesRepo := repository.NewServiceRepository(db)
	bookings := repository.NewBookingRepository(db)

	log.Println("Creating users...")

	admin := mustUser(ctx, users, "admin@petmarket.io", "admin123", domain.RoleAdmin, "Platform Admin")
	log.Printf("Admin created: %s / admin123", admin.Email)

	owners := make([]*domain.User, 0, 3)
	for i, email := range []string{"anna@example.com", "boris@example.com", "carol@example.com"} {
		u := mustUser(ctx, users, email, "owner123", domain.RolePetOwner, fmt.Sprintf("Owner %d", i+1))
		owners = append(owners, u)
	}

	providers := make([]*domain.User, 0, 2)
	for i, email := range []string{"walks@example.com", "grooming@example.com"} {
		u := mustUser(ctx, users, email, "provider123", domain.RoleProvider, fmt.Sprintf("Provider %d", i+1))
		providers = append(providers, u)
	}

	log.Println("Creating pets...")
	pets := make([]*domain.Pet, 0, len(owners))
	species := []string{"dog", "cat", "dog"}
	names := []string{"Rex", "Misty", "Charlie"}
	for i, owner := range owners {
		p := &domain.Pet{
			OwnerID:  owner.ID,
			Name:     names[i],
			Species:  species[i],
			AgeYears: 2 + i,
		}
		if err := petsRepo.Create(ctx, p); err != nil {
			log.Fatal(err)
		}
		pets = append(pets, p)
	}

	log.Println("Creating services...")
	walk := &domain.Service{
		ProviderID:  providers[0].ID,
		Title:       "30 minute dog walk",
		Description: "Neighborhood walk with photo updates.",
		Type:        domain.ServiceWalking,
		PriceCents:  1500,
		DurationMin: 30,
		Active:      true,
	}
	groom := &domain.Service{
		ProviderID:  providers[1].ID,
		Title:       "Full grooming session",
		Description: "Bath, trim and nail clipping.",
		Type:        domain.ServiceGrooming,
		PriceCents:  4500,
		DurationMin: 90,
		Active:      true,
	}
	for _, s := range []*domain.Service{walk, groom} {
		if err := servicesRepo.Create(ctx, s); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating bookings...")
	statuses := []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed, domain.BookingCompleted}
	for i, owner := range owners {
		b := &domain.Booking{
			OwnerID:     owner.ID,
			ServiceID:   walk.ID,
			ProviderID:  walk.ProviderID,
			PetID:       pets[i].ID,
			BookingTime: time.Now().Add(time.Duration(24*(i+1)) * time.Hour),
			Status:      domain.BookingPending,
			AmountCents: walk.PriceCents,
		}
		if err := bookings.Create(ctx, b); err != nil {
			log.Fatal(err)
		}
		if statuses[i] != domain.BookingPending {
			db.Exec("UPDATE bookings SET status = ? WHERE id = ?", string(statuses[i]), b.ID)
		}
	}

	log.Println("Seed complete.")
}

func mustUser(ctx context.Context, repo *repository.UserRepository, email, password string, role domain.UserRole, name string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
	}
	if err := repo.Create(ctx, u); err != nil {
		log.Fatal(err)
	}
	return u
}
