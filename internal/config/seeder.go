package config

import (
	"log"

	"ufa-alliance/internal/adapters/persistence/models"
	"ufa-alliance/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedOpportunities(); err != nil {
		log.Printf("⚠️ Opportunity seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds a default admin account for development.
// The admin role itself comes from the ADMIN_EMAILS allow-list, so the
// seeded account is only useful when its email is on that list.
func (s *Seeder) seedAdminUser() error {
	if len(s.cfg.Admin.Emails) == 0 {
		log.Println("⚠️ Skipping admin seed: ADMIN_EMAILS not set")
		return nil
	}

	email := s.cfg.Admin.Emails[0]

	var count int64
	s.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "UFA Admin",
		Email:    email,
		Password: hashedPassword,
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedOpportunities seeds the community-opportunities directory with its
// starter dataset so the directory is never empty on first run.
func (s *Seeder) seedOpportunities() error {
	var count int64
	s.db.Model(&models.Opportunity{}).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	opportunities := []models.Opportunity{
		{
			Title:        "Youth Mentorship Program",
			Organization: "United Future Alliance",
			Category:     "education",
			County:       "Nairobi",
			Description:  "Mentor secondary-school students in civic leadership and career planning.",
			ContactEmail: "mentorship@unitedfuturealliance.org",
			IsActive:     true,
		},
		{
			Title:        "Community Clean-Up Drive",
			Organization: "Green Streets Initiative",
			Category:     "environment",
			County:       "Mombasa",
			Description:  "Monthly neighborhood clean-up and tree planting along the coastline.",
			ContactEmail: "volunteer@greenstreets.or.ke",
			IsActive:     true,
		},
		{
			Title:        "Voter Education Outreach",
			Organization: "United Future Alliance",
			Category:     "civic",
			County:       "Kisumu",
			Description:  "Door-to-door voter registration support and civic education sessions.",
			ContactEmail: "outreach@unitedfuturealliance.org",
			IsActive:     true,
		},
		{
			Title:        "Mobile Health Camp Support",
			Organization: "AfyaCare Network",
			Category:     "health",
			County:       "Nakuru",
			Description:  "Assist medical teams with registration and logistics at pop-up clinics.",
			ContactEmail: "camps@afyacare.org",
			IsActive:     true,
		},
		{
			Title:        "Digital Skills Bootcamp Tutor",
			Organization: "TechBridge Kenya",
			Category:     "education",
			County:       "Nairobi",
			Description:  "Teach basic computer literacy to adults at community resource centers.",
			ContactEmail: "tutors@techbridge.ke",
			IsActive:     true,
		},
	}

	if err := s.db.Create(&opportunities).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d community opportunities", len(opportunities))
	return nil
}
