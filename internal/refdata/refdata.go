package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultTTL before a reload is attempted
const DefaultTTL = 45 * time.Minute

// TeamProfile carries historical pace numbers for one team
type TeamProfile struct {
	Team            string
	PossessionsPG   float64
	PointsPG        float64
	FoulsCommittedPG float64
}

// PairModifier is a late-game adjustment for a specific matchup, layered on
// top of the base foul-game table
type PairModifier struct {
	TeamA    string
	TeamB    string
	Modifier float64
}

// Store holds reference tables loaded from CSV with TTL-based reload.
// Reads never block on a reload; a failed reload keeps serving the
// previous tables.
type Store struct {
	profilesPath  string
	modifiersPath string
	ttl           time.Duration

	mu        sync.RWMutex
	profiles  map[string]TeamProfile
	modifiers map[string]float64
	loadedAt  time.Time
}

// NewStore creates a reference data store. Either path may be empty, in
// which case that table stays empty.
func NewStore(profilesPath, modifiersPath string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		profilesPath:  profilesPath,
		modifiersPath: modifiersPath,
		ttl:           ttl,
		profiles:      map[string]TeamProfile{},
		modifiers:     map[string]float64{},
	}
}

// Load reads both tables from disk, replacing the in-memory copies
func (s *Store) Load() error {
	profiles := map[string]TeamProfile{}
	modifiers := map[string]float64{}

	if s.profilesPath != "" {
		loaded, err := loadProfiles(s.profilesPath)
		if err != nil {
			return fmt.Errorf("load team profiles: %w", err)
		}
		profiles = loaded
	}

	if s.modifiersPath != "" {
		loaded, err := loadModifiers(s.modifiersPath)
		if err != nil {
			return fmt.Errorf("load pair modifiers: %w", err)
		}
		modifiers = loaded
	}

	s.mu.Lock()
	s.profiles = profiles
	s.modifiers = modifiers
	s.loadedAt = time.Now()
	s.mu.Unlock()

	return nil
}

// Stale reports whether the tables are past their TTL
func (s *Store) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.loadedAt) > s.ttl
}

// Profile returns a team's historical pace profile
func (s *Store) Profile(team string) (TeamProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[normalizeKey(team)]
	return p, ok
}

// PairModifier returns the foul-game adjustment for a matchup, checking
// both orderings. Missing pairs return 0.
func (s *Store) PairModifier(teamA, teamB string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.modifiers[pairKey(teamA, teamB)]; ok {
		return v
	}
	if v, ok := s.modifiers[pairKey(teamB, teamA)]; ok {
		return v
	}
	return 0
}

// loadProfiles reads a CSV of team,possessions_pg,points_pg,fouls_committed_pg
func loadProfiles(path string) (map[string]TeamProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	profiles := map[string]TeamProfile{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			if strings.EqualFold(record[0], "team") {
				continue
			}
		}
		if len(record) < 4 {
			continue
		}

		profile := TeamProfile{
			Team:             record[0],
			PossessionsPG:    parseFloat(record[1]),
			PointsPG:         parseFloat(record[2]),
			FoulsCommittedPG: parseFloat(record[3]),
		}
		profiles[normalizeKey(profile.Team)] = profile
	}

	return profiles, nil
}

// loadModifiers reads a CSV of team_a,team_b,modifier
func loadModifiers(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	modifiers := map[string]float64{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			if strings.EqualFold(record[0], "team_a") {
				continue
			}
		}
		if len(record) < 3 {
			continue
		}

		modifiers[pairKey(record[0], record[1])] = parseFloat(record[2])
	}

	return modifiers, nil
}

func pairKey(teamA, teamB string) string {
	return normalizeKey(teamA) + "|" + normalizeKey(teamB)
}

func normalizeKey(team string) string {
	return strings.Join(strings.Fields(strings.ToLower(team)), " ")
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}
