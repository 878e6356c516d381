package repositories

import (
	"errors"

	"blog-api/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxToggleAttempts = 3

type ToggleOutcome string

const (
	ReactionCreated  ToggleOutcome = "created"
	ReactionSwitched ToggleOutcome = "switched"
	ReactionRemoved  ToggleOutcome = "removed"
)

type ReactionRepository interface {
	Toggle(blogID, userID uint, reactionType models.ReactionType) (ToggleOutcome, error)
	GetByID(id uint) (*models.Reaction, error)
	GetForUser(blogID, userID uint) (*models.Reaction, error)
	Counts(blogID uint) (models.ReactionCounts, error)
	Delete(id uint) error
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Toggle applies the reaction state machine for (blog, user) in one
// transaction: none -> created, same type -> removed, other type -> switched.
// Two first reactions racing on the unique (blog_id, user_id) index leave one
// loser with a duplicate key; the loser re-runs the transaction and then sees
// the winner's row.
func (r *reactionRepository) Toggle(blogID, userID uint, reactionType models.ReactionType) (ToggleOutcome, error) {
	var (
		outcome ToggleOutcome
		err     error
	)

	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		err = r.db.Transaction(func(tx *gorm.DB) error {
			var existing models.Reaction
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("blog_id = ? AND user_id = ?", blogID, userID).
				Take(&existing).Error

			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				outcome = ReactionCreated
				return tx.Create(&models.Reaction{BlogID: blogID, UserID: userID, Type: reactionType}).Error
			case err != nil:
				return err
			case existing.Type == reactionType:
				outcome = ReactionRemoved
				return tx.Delete(&existing).Error
			default:
				outcome = ReactionSwitched
				return tx.Model(&existing).Update("type", reactionType).Error
			}
		})

		if err == nil || !IsUniqueViolation(err) {
			break
		}
		log.Debug().Uint("blog_id", blogID).Uint("user_id", userID).Int("attempt", attempt).Msg("concurrent reaction, retrying toggle")
	}

	if err != nil {
		return "", err
	}
	return outcome, nil
}

func (r *reactionRepository) GetByID(id uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.First(&reaction, id).Error
	return &reaction, err
}

func (r *reactionRepository) GetForUser(blogID, userID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.Where("blog_id = ? AND user_id = ?", blogID, userID).Take(&reaction).Error
	return &reaction, err
}

func (r *reactionRepository) Counts(blogID uint) (models.ReactionCounts, error) {
	var rows []reactionCountRow
	err := r.db.Model(&models.Reaction{}).
		Select("blog_id, type, COUNT(*) AS total").
		Where("blog_id = ?", blogID).
		Group("blog_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := models.NewReactionCounts()
	for _, row := range rows {
		counts[row.Type] = row.Total
	}
	return counts, nil
}

func (r *reactionRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Reaction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
