package repositories

import (
	"blog-api/slug"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const maxSlugAttempts = 5

// Column sizes of the slug columns; candidates never exceed them.
const (
	categorySlugSize      = 120
	tagSlugSize           = 60
	blogSlugSize          = 255
	advertisementSlugSize = 255

	// slugSuffixRoom is the widest "-n" suffix Next is expected to append.
	slugSuffixRoom = 10
)

// takenSlugs returns every slug in table that could collide with a candidate
// derived from base, excluding the row with id excludeID. Long bases are
// matched on a shortened prefix since Next cuts them to fit a suffix.
func takenSlugs(db *gorm.DB, table, base string, size int, excludeID uint) (map[string]struct{}, error) {
	prefix := base
	if len(prefix) > size-slugSuffixRoom {
		prefix = slug.Truncate(base, size-slugSuffixRoom)
	}

	var slugs []string
	q := db.Table(table).Where("slug LIKE ?", prefix+"%")
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		taken[s] = struct{}{}
	}
	return taken, nil
}

// saveWithSlug picks the first free slug derived from base, hands it to
// assign and runs save. Two writers can pick the same slug between the read
// and the insert; the loser sees a unique violation and tries again with a
// fresh read.
func saveWithSlug(db *gorm.DB, table, base string, size int, excludeID uint, assign func(string), save func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		var taken map[string]struct{}
		if taken, err = takenSlugs(db, table, base, size, excludeID); err != nil {
			return err
		}

		candidate := slug.Next(base, taken, size)
		assign(candidate)

		if err = save(db); err == nil || !IsUniqueViolation(err) {
			return err
		}
		log.Debug().Str("table", table).Str("slug", candidate).Int("attempt", attempt).Msg("slug collision, retrying")
	}
	return err
}
