// Package catalog defines the seed data model for restaurants and their
// physical tables, with an optional YAML override file for deployments that
// serve a different restaurant set.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TableSeed describes one physical table to create for a restaurant.
type TableSeed struct {
	Number   int `yaml:"number"`
	Capacity int `yaml:"capacity"`
}

// RestaurantSeed describes one restaurant and its tables.
type RestaurantSeed struct {
	ID          int64       `yaml:"id"`
	Name        string      `yaml:"name"`
	Cuisine     string      `yaml:"cuisine"`
	Location    string      `yaml:"location"`
	City        string      `yaml:"city"`
	Address     string      `yaml:"address"`
	Phone       string      `yaml:"phone"`
	Rating      float64     `yaml:"rating"`
	PriceRange  string      `yaml:"price_range"`
	Description string      `yaml:"description"`
	Tables      []TableSeed `yaml:"tables"`
}

// Seed is the full catalog loaded at startup.
type Seed struct {
	Restaurants []RestaurantSeed `yaml:"restaurants"`
}

// LoadSeedFile reads and validates a YAML seed file.
func LoadSeedFile(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("catalog: read seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("catalog: parse seed file: %w", err)
	}

	if err := seed.Validate(); err != nil {
		return Seed{}, err
	}

	return seed, nil
}

// Validate checks seed integrity: unique restaurant ids, unique table numbers
// per restaurant, positive capacities.
func (s Seed) Validate() error {
	seenIDs := make(map[int64]struct{}, len(s.Restaurants))
	for _, restaurant := range s.Restaurants {
		if restaurant.ID <= 0 {
			return fmt.Errorf("catalog: restaurant %q has invalid id %d", restaurant.Name, restaurant.ID)
		}
		if _, ok := seenIDs[restaurant.ID]; ok {
			return fmt.Errorf("catalog: duplicate restaurant id %d", restaurant.ID)
		}
		seenIDs[restaurant.ID] = struct{}{}

		if restaurant.Name == "" {
			return fmt.Errorf("catalog: restaurant %d has no name", restaurant.ID)
		}

		seenNumbers := make(map[int]struct{}, len(restaurant.Tables))
		for _, table := range restaurant.Tables {
			if table.Capacity <= 0 {
				return fmt.Errorf("catalog: restaurant %d table %d has invalid capacity %d",
					restaurant.ID, table.Number, table.Capacity)
			}
			if _, ok := seenNumbers[table.Number]; ok {
				return fmt.Errorf("catalog: restaurant %d has duplicate table number %d",
					restaurant.ID, table.Number)
			}
			seenNumbers[table.Number] = struct{}{}
		}
	}
	return nil
}

// StandardTables returns the default table mix: three tables each of two,
// four, and six seats.
func StandardTables() []TableSeed {
	tables := make([]TableSeed, 0, 9)
	number := 1
	for _, capacity := range []int{2, 4, 6} {
		for i := 0; i < 3; i++ {
			tables = append(tables, TableSeed{Number: number, Capacity: capacity})
			number++
		}
	}
	return tables
}

// DefaultSeed returns the built-in catalog used when no seed file is
// configured.
func DefaultSeed() Seed {
	restaurants := []RestaurantSeed{
		{ID: 1, Name: "Spice Garden", Cuisine: "Indian", Location: "Koramangala", City: "Bangalore", Address: "123 Main St", Phone: "080-1234567", Rating: 4.5, PriceRange: "$$", Description: "Authentic Indian cuisine"},
		{ID: 2, Name: "Curry House", Cuisine: "Indian", Location: "Indiranagar", City: "Bangalore", Address: "45 Church St", Phone: "080-2345678", Rating: 4.3, PriceRange: "$$", Description: "South Indian specialties"},
		{ID: 3, Name: "Maharaja Palace", Cuisine: "Indian", Location: "MG Road", City: "Bangalore", Address: "78 MG Road", Phone: "080-3456789", Rating: 4.7, PriceRange: "$$$", Description: "Royal dining experience"},
		{ID: 4, Name: "Bella Italia", Cuisine: "Italian", Location: "Koramangala", City: "Bangalore", Address: "90 Pizza Lane", Phone: "080-4567890", Rating: 4.6, PriceRange: "$$$", Description: "Authentic Italian"},
		{ID: 5, Name: "Luigi's Kitchen", Cuisine: "Italian", Location: "Brigade Road", City: "Bangalore", Address: "12 Pasta St", Phone: "080-5678901", Rating: 4.2, PriceRange: "$$", Description: "Homemade pasta"},
		{ID: 6, Name: "Dragon Wok", Cuisine: "Chinese", Location: "Koramangala", City: "Bangalore", Address: "34 Wok Ave", Phone: "080-6789012", Rating: 4.4, PriceRange: "$$", Description: "Szechuan & dim sum"},
		{ID: 7, Name: "Golden Chopsticks", Cuisine: "Chinese", Location: "Commercial Street", City: "Bangalore", Address: "56 Noodle Rd", Phone: "080-7890123", Rating: 4.1, PriceRange: "$", Description: "Quick Chinese"},
		{ID: 8, Name: "The Continental", Cuisine: "Continental", Location: "Indiranagar", City: "Bangalore", Address: "89 Fine Dine", Phone: "080-8901234", Rating: 4.6, PriceRange: "$$$", Description: "Steaks & grills"},
		{ID: 9, Name: "Taco Fiesta", Cuisine: "Mexican", Location: "Koramangala", City: "Bangalore", Address: "23 Taco St", Phone: "080-9012345", Rating: 4.3, PriceRange: "$$", Description: "Mexican favorites"},
		{ID: 10, Name: "Sakura Sushi", Cuisine: "Japanese", Location: "UB City", City: "Bangalore", Address: "67 Sushi Lane", Phone: "080-0123456", Rating: 4.7, PriceRange: "$$$", Description: "Fresh sushi & sashimi"},
	}

	for i := range restaurants {
		restaurants[i].Tables = StandardTables()
	}

	return Seed{Restaurants: restaurants}
}
