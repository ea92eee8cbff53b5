package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zerofake/zerofake/config"
	"github.com/zerofake/zerofake/levelgen"
	"github.com/zerofake/zerofake/middleware"
	"github.com/zerofake/zerofake/models"
	"github.com/zerofake/zerofake/streak"
	"github.com/zerofake/zerofake/utils"
)

// LevelController serves generated training levels and grades submissions.
// A level's question set is deterministic per (user, level, day), so the set
// a trainee was shown is the set their submission is graded against.
type LevelController struct {
	db *gorm.DB
}

// NewLevelController creates a LevelController.
func NewLevelController(db *gorm.DB) *LevelController {
	return &LevelController{db: db}
}

const maxLevel = 10

// List reports the level ladder with the user's completion state.
func (lc *LevelController) List(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var results []models.LevelResult
	if err := lc.db.Where("user_id = ?", userID).Find(&results).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load level results")
		return
	}
	byLevel := make(map[int]models.LevelResult, len(results))
	for _, r := range results {
		byLevel[r.Level] = r
	}

	levels := make([]gin.H, 0, maxLevel)
	for lvl := 1; lvl <= maxLevel; lvl++ {
		entry := gin.H{"level": lvl, "completed": false}
		if r, done := byLevel[lvl]; done {
			entry["completed"] = true
			entry["score"] = r.Score
			entry["total"] = r.Total
		}
		levels = append(levels, entry)
	}
	utils.Success(ctx, gin.H{"levels": levels})
}

// Get serves the generated question set for one level. Answers and
// explanations are withheld until the level is submitted.
func (lc *LevelController) Get(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	level, err := parseLevel(ctx.Param("level"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, err.Error())
		return
	}

	questions, err := lc.levelQuestions(userID, level)
	if err != nil {
		if errors.Is(err, levelgen.ErrPoolTooSmall) {
			utils.Error(ctx, http.StatusServiceUnavailable, 50321, "question pool is not provisioned yet")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to build level")
		return
	}

	out := make([]gin.H, 0, len(questions))
	for _, q := range questions {
		out = append(out, gin.H{
			"id":       q.ID,
			"prompt":   q.Prompt,
			"choices":  []string{q.ChoiceA, q.ChoiceB, q.ChoiceC, q.ChoiceD},
			"category": q.Category,
		})
	}
	utils.Success(ctx, gin.H{"level": level, "questions": out})
}

// Submit grades a level attempt. The first completion of a level awards
// points; replays may improve the stored score but never re-award.
func (lc *LevelController) Submit(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	level, err := parseLevel(ctx.Param("level"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, err.Error())
		return
	}

	var req struct {
		// question id -> chosen option index (0..3)
		Answers map[string]int `json:"answers" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}

	questions, err := lc.levelQuestions(userID, level)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to build level")
		return
	}

	score, review := gradeAnswers(questions, req.Answers)
	total := len(questions)

	cfg := config.Get()
	awarded := 0

	err = lc.db.Transaction(func(tx *gorm.DB) error {
		var prev models.LevelResult
		findErr := tx.Where("user_id = ? AND level = ?", userID, level).First(&prev).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			awarded = cfg.LevelRewardPoints
			res := models.LevelResult{
				UserID:        userID,
				Level:         level,
				Score:         score,
				Total:         total,
				PointsAwarded: awarded,
				CompletedAt:   time.Now(),
			}
			if err := tx.Create(&res).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// concurrent first completion won; treat this one as a replay
					awarded = 0
					return nil
				}
				return err
			}
			return tx.Model(&models.User{}).Where("id = ?", userID).
				Update("points", gorm.Expr("points + ?", awarded)).Error
		case findErr != nil:
			return findErr
		default:
			if score > prev.Score {
				return tx.Model(&prev).Updates(map[string]interface{}{
					"score":        score,
					"total":        total,
					"completed_at": time.Now(),
				}).Error
			}
			return nil
		}
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to record result")
		return
	}
	if awarded > 0 {
		invalidateLeaderboards()
	}

	utils.Success(ctx, gin.H{
		"level":          level,
		"score":          score,
		"total":          total,
		"points_awarded": awarded,
		"review":         review,
	})
}

// levelQuestions builds the deterministic question set for (user, level) on
// the current UTC day and loads the full rows in generated order.
func (lc *LevelController) levelQuestions(userID uint, level int) ([]models.Question, error) {
	var pool []models.Question
	if err := lc.db.Select("id", "difficulty").Find(&pool).Error; err != nil {
		return nil, err
	}

	items := make([]levelgen.Item, 0, len(pool))
	for _, q := range pool {
		items = append(items, levelgen.Item{ID: q.ID, Difficulty: q.Difficulty})
	}

	ids, err := levelgen.Build(items, level, config.Get().LevelSize, levelSeed(userID, level))
	if err != nil {
		return nil, err
	}

	var rows []models.Question
	if err := lc.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	// restore generated order
	pos := make(map[uint]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	sort.Slice(rows, func(i, j int) bool { return pos[rows[i].ID] < pos[rows[j].ID] })
	return rows, nil
}

// levelSeed keys generation on user, level, and the current UTC day, so a
// trainee sees a stable set all day and a fresh one tomorrow.
func levelSeed(userID uint, level int) int64 {
	day := streak.DateOf(time.Now(), time.UTC)
	return int64(userID)*1_000_003 + int64(level)*10_007 +
		int64(day.Year)*372 + int64(day.Month)*31 + int64(day.Day)
}

// gradeAnswers scores a submission and builds the per-question review with
// the correct answer and explanation revealed.
func gradeAnswers(questions []models.Question, answers map[string]int) (int, []gin.H) {
	score := 0
	review := make([]gin.H, 0, len(questions))
	for _, q := range questions {
		chosen, answered := answers[strconv.FormatUint(uint64(q.ID), 10)]
		correct := answered && chosen == q.Answer
		if correct {
			score++
		}
		review = append(review, gin.H{
			"id":          q.ID,
			"correct":     correct,
			"answer":      q.Answer,
			"explanation": q.Explanation,
		})
	}
	return score, review
}

func parseLevel(raw string) (int, error) {
	level, err := strconv.Atoi(raw)
	if err != nil || level < 1 || level > maxLevel {
		return 0, errors.New("level must be between 1 and 10")
	}
	return level, nil
}
