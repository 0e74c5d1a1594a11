package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kafelab/coffee-lab-backend/internal/adapters/database"
	"github.com/kafelab/coffee-lab-backend/internal/adapters/search"
	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/clients/postgres"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/clients/typesense"
	"github.com/kafelab/coffee-lab-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("APPLY_SCHEMA") == "true" {
		schema, err := os.ReadFile("scripts/schema.sql")
		if err != nil {
			log.Fatalf("Failed to read schema: %v", err)
		}
		if _, err := pgClient.DB().ExecContext(ctx, string(schema)); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		log.Println("Schema applied")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				user_inventory,
				ocr_cache,
				user_achievements,
				achievements,
				user_records,
				coffee_beans,
				origins,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	var searchRepo *search.TypesenseAdapter
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		if err := searchRepo.InitSchema(ctx); err != nil {
			log.Printf("Failed to init Typesense schema: %v", err)
		}
	}

	originRepo := database.NewOriginAdapter(pgClient)
	coffeeRepo := database.NewCoffeeAdapter(pgClient)
	achievementRepo := database.NewAchievementAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)

	now := time.Now().UTC()

	// 1. Origins
	origins := []entities.Origin{
		{ID: uuid.New().String(), Name: "Ethiopia", Code: "ET", Latitude: 9.145, Longitude: 40.4897, FlavorProfile: "floral, citrus, tea-like", IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Kenya", Code: "KE", Latitude: -0.0236, Longitude: 37.9062, FlavorProfile: "blackcurrant, tomato, bright acidity", IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Colombia", Code: "CO", Latitude: 4.5709, Longitude: -74.2973, FlavorProfile: "caramel, red fruit, balanced", IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Brazil", Code: "BR", Latitude: -14.235, Longitude: -51.9253, FlavorProfile: "chocolate, nuts, low acidity", IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Panama", Code: "PA", Latitude: 8.538, Longitude: -80.7821, FlavorProfile: "jasmine, bergamot, stone fruit", IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Indonesia", Code: "ID", Latitude: -0.7893, Longitude: 113.9213, FlavorProfile: "earthy, herbal, heavy body", IsActive: true, CreatedAt: now},
	}
	originByName := make(map[string]string, len(origins))
	for i := range origins {
		if err := originRepo.Create(ctx, &origins[i]); err != nil {
			log.Printf("Failed to create origin %s: %v", origins[i].Name, err)
		}
		originByName[origins[i].Name] = origins[i].ID
	}

	// 2. Coffee beans
	coffees := []entities.CoffeeBean{
		{
			ID: uuid.New().String(), Name: "Yirgacheffe G1", OriginID: originByName["Ethiopia"],
			Region: "Yirgacheffe", Variety: "Heirloom", Process: entities.ProcessWashed,
			AltitudeMin: intp(1900), AltitudeMax: intp(2100),
			FlavorNotes: []string{"floral", "citrus", "bergamot"},
			GrindSize:   "medium-fine", Ratio: "1:15", Temperature: "92C", BrewTime: "2:30",
			IsActive: true, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), Name: "Guji Natural", OriginID: originByName["Ethiopia"],
			Region: "Guji", Variety: "Heirloom", Process: entities.ProcessNatural,
			AltitudeMin: intp(1850), AltitudeMax: intp(2000),
			FlavorNotes: []string{"berry", "winey", "chocolate"},
			IsActive:    true, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), Name: "Nyeri AA", OriginID: originByName["Kenya"],
			Region: "Nyeri", Variety: "SL28", Process: entities.ProcessWashed,
			AltitudeMin: intp(1700), AltitudeMax: intp(1900),
			FlavorNotes: []string{"blackcurrant", "tomato", "brown sugar"},
			IsActive:    true, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), Name: "El Paraiso Lychee", OriginID: originByName["Colombia"],
			Region: "Cauca", Variety: "Castillo", Process: entities.ProcessCarbonic,
			AltitudeMin: intp(1750), AltitudeMax: intp(1950),
			FlavorNotes: []string{"lychee", "rose", "tropical"},
			IsActive:    true, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), Name: "Santos Chocolate", OriginID: originByName["Brazil"],
			Region: "Mogiana", Variety: "Mundo Novo", Process: entities.ProcessNatural,
			AltitudeMin: intp(900), AltitudeMax: intp(1200),
			FlavorNotes: []string{"chocolate", "hazelnut", "caramel"},
			IsActive:    true, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), Name: "Esmeralda Geisha", OriginID: originByName["Panama"],
			Region: "Boquete", Variety: "Geisha", Process: entities.ProcessWashed,
			AltitudeMin: intp(1600), AltitudeMax: intp(1800),
			FlavorNotes: []string{"jasmine", "bergamot", "peach"},
			IsActive:    true, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), Name: "Sumatra Mandheling", OriginID: originByName["Indonesia"],
			Region: "North Sumatra", Variety: "Typica", Process: entities.ProcessWetHulled,
			AltitudeMin: intp(1100), AltitudeMax: intp(1500),
			FlavorNotes: []string{"earthy", "cedar", "dark chocolate"},
			IsActive:    true, CreatedAt: now, UpdatedAt: now,
		},
	}
	for i := range coffees {
		if err := coffeeRepo.Create(ctx, &coffees[i]); err != nil {
			log.Printf("Failed to create coffee %s: %v", coffees[i].Name, err)
			continue
		}
		if searchRepo != nil {
			if err := searchRepo.Index(ctx, &coffees[i]); err != nil {
				log.Printf("Failed to index coffee %s: %v", coffees[i].Name, err)
			}
		}
	}

	// 3. Achievements
	achievements := []entities.Achievement{
		{ID: uuid.New().String(), Name: "First Sip", Description: "Log your first coffee", Icon: "☕", Category: entities.CategoryCount, Rarity: entities.RarityCommon,
			Condition: entities.Condition{Kind: entities.ConditionRecordCount, Count: 1, MinRating: entities.DefaultMinRating}, IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Globe Trotter", Description: "Taste coffees from 3 different origins", Icon: "🌍", Category: entities.CategoryOrigin, Rarity: entities.RarityRare,
			Condition: entities.Condition{Kind: entities.ConditionOriginCount, Count: 3, MinRating: entities.DefaultMinRating}, IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Bean Collector", Description: "Try 10 different coffees", Icon: "🫘", Category: entities.CategoryCount, Rarity: entities.RarityRare,
			Condition: entities.Condition{Kind: entities.ConditionCoffeeCount, Count: 10, MinRating: entities.DefaultMinRating}, IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Ethiopian Pilgrimage", Description: "Taste a coffee from Ethiopia", Icon: "🇪🇹", Category: entities.CategoryOrigin, Rarity: entities.RarityCommon,
			Condition: entities.Condition{Kind: entities.ConditionSpecificOrigin, Values: []string{"Ethiopia"}, MinRating: entities.DefaultMinRating}, IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Geisha Hunter", Description: "Taste a Geisha variety coffee", Icon: "🌸", Category: entities.CategoryVariety, Rarity: entities.RarityEpic,
			Condition: entities.Condition{Kind: entities.ConditionSpecificVariety, Values: []string{"geisha"}, MinRating: entities.DefaultMinRating}, IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Fermentation Fan", Description: "Try an anaerobic or carbonic coffee", Icon: "🧪", Category: entities.CategoryProcess, Rarity: entities.RarityRare,
			Condition: entities.Condition{Kind: entities.ConditionSpecificProcess, Values: []string{"anaerobic", "carbonic"}, MinRating: entities.DefaultMinRating}, IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Discerning Palate", Description: "Rate 5 coffees 4 stars or higher", Icon: "⭐", Category: entities.CategoryCount, Rarity: entities.RarityRare,
			Condition: entities.Condition{Kind: entities.ConditionRatingCount, Count: 5, MinRating: entities.DefaultMinRating}, IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Flavor Explorer", Description: "Taste floral, chocolate and berry coffees", Icon: "👅", Category: entities.CategorySpecial, Rarity: entities.RarityEpic,
			Condition: entities.Condition{Kind: entities.ConditionFlavorExplorer, Values: []string{"floral", "chocolate", "berry"}, MinRating: entities.DefaultMinRating}, IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "High Altitude Club", Description: "Taste a coffee grown above 1900m", Icon: "⛰️", Category: entities.CategorySpecial, Rarity: entities.RarityLegendary,
			Condition: entities.Condition{Kind: entities.ConditionHighAltitude, Count: 1900, MinRating: entities.DefaultMinRating}, IsActive: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Label Scanner", Description: "Recognize 5 coffees by photo", Icon: "📷", Category: entities.CategorySpecial, Rarity: entities.RarityRare,
			Condition: entities.Condition{Kind: entities.ConditionOCRMaster, Count: 5, MinRating: entities.DefaultMinRating}, IsActive: true, CreatedAt: now},
	}
	for i := range achievements {
		if err := achievementRepo.Create(ctx, &achievements[i]); err != nil {
			log.Printf("Failed to create achievement %s: %v", achievements[i].Name, err)
		}
	}

	// 4. Demo user
	demo := entities.User{
		ID: uuid.New().String(), Username: "demo", Nickname: "Demo Taster",
		Email: "demo@example.com", IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := userRepo.Create(ctx, &demo); err != nil {
		log.Printf("Failed to create demo user: %v", err)
	}

	log.Printf("Seeded %d origins, %d coffees, %d achievements", len(origins), len(coffees), len(achievements))
}

func intp(v int) *int { return &v }
