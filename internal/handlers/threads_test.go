package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lakshmanbhukya/threadly-backend/internal/database"
	"github.com/lakshmanbhukya/threadly-backend/internal/models"
	"github.com/lakshmanbhukya/threadly-backend/internal/realtime"
	"github.com/lakshmanbhukya/threadly-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes an in-memory SQLite DB and wires the realtime
// collaborators for handler tests.
func SetupTestDB() {
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.Thread{},
		&models.PollOption{},
		&models.Post{},
		&models.Comment{},
		&models.Conversation{},
		&models.Message{},
		&models.MessageReceipt{},
		&models.Notification{},
	)

	// The shared-cache database outlives each gorm.Open in the package;
	// every test starts from empty tables.
	for _, table := range []string{
		"conversation_participants", "message_receipts", "messages",
		"conversations", "notifications", "poll_options", "comments",
		"posts", "threads", "users",
	} {
		database.DB.Exec("DELETE FROM " + table)
	}

	Wire(realtime.NewRegistry(), realtime.NewRouter(), services.NewNotifier(db, nil))
}

func testContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		buf = bytes.NewBuffer(payload)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	c.Request, _ = http.NewRequest(method, target, buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestToggleThreadLikeRoundTrip(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "like_owner", Username: "like_owner", Email: "like_owner@example.com"})
	database.DB.Create(&models.User{ID: "like_actor", Username: "like_actor", Email: "like_actor@example.com"})
	thread := models.Thread{ID: "t_like", Title: "Likeable", CreatedByID: "like_owner"}
	database.DB.Create(&thread)

	// First like
	c, w := testContext("POST", "/api/threads/t_like/like", nil)
	c.Params = gin.Params{{Key: "id", Value: "t_like"}}
	c.Set("userId", "like_actor")
	ToggleThreadLike(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		IsLiked    bool `json:"isLiked"`
		LikesCount int  `json:"likesCount"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.True(t, resp.IsLiked)
	assert.Equal(t, 1, resp.LikesCount)

	// Owner got a notification for the false-to-true transition
	var notifCount int64
	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", "like_owner", models.NotificationThreadLiked).
		Count(&notifCount)
	assert.Equal(t, int64(1), notifCount)

	// Second like returns the set to its original membership
	c, w = testContext("POST", "/api/threads/t_like/like", nil)
	c.Params = gin.Params{{Key: "id", Value: "t_like"}}
	c.Set("userId", "like_actor")
	ToggleThreadLike(c)

	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.False(t, resp.IsLiked)
	assert.Equal(t, 0, resp.LikesCount)

	var reloaded models.Thread
	database.DB.First(&reloaded, "id = ?", "t_like")
	assert.False(t, reloaded.Likes.Contains("like_actor"))
}

func TestDownvoteRemovesStandingLike(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "dv_owner", Username: "dv_owner", Email: "dv_owner@example.com"})
	thread := models.Thread{ID: "t_dv", Title: "Divisive", CreatedByID: "dv_owner", Likes: models.ActorSet{"dv_actor"}}
	database.DB.Create(&thread)

	c, w := testContext("POST", "/api/threads/t_dv/downvote", nil)
	c.Params = gin.Params{{Key: "id", Value: "t_dv"}}
	c.Set("userId", "dv_actor")
	ToggleThreadDownvote(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Thread
	database.DB.First(&reloaded, "id = ?", "t_dv")
	assert.True(t, reloaded.Downvotes.Contains("dv_actor"))
	assert.False(t, reloaded.Likes.Contains("dv_actor"))
}

func TestVoteOnPollMovesVote(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "poll_owner", Username: "poll_owner", Email: "poll_owner@example.com"})
	thread := models.Thread{
		ID:          "t_poll",
		Title:       "Favorite language?",
		PostType:    models.PostTypePoll,
		CreatedByID: "poll_owner",
		PollOptions: []models.PollOption{
			{ID: "opt0", Position: 0, Text: "Go", Votes: models.ActorSet{}},
			{ID: "opt1", Position: 1, Text: "Rust", Votes: models.ActorSet{}},
		},
	}
	database.DB.Create(&thread)

	vote := func(index int) *httptest.ResponseRecorder {
		c, w := testContext("POST", "/api/threads/t_poll/poll-vote", map[string]int{"optionIndex": index})
		c.Params = gin.Params{{Key: "id", Value: "t_poll"}}
		c.Set("userId", "voter")
		VoteOnPoll(c)
		return w
	}

	assert.Equal(t, http.StatusOK, vote(1).Code)
	assert.Equal(t, http.StatusOK, vote(0).Code)

	var options []models.PollOption
	database.DB.Where("thread_id = ?", "t_poll").Order("position asc").Find(&options)
	assert.True(t, options[0].Votes.Contains("voter"))
	assert.False(t, options[1].Votes.Contains("voter"))
}

func TestVoteOnPollRejectsNonPoll(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "np_owner", Username: "np_owner", Email: "np_owner@example.com"})
	database.DB.Create(&models.Thread{ID: "t_plain", Title: "Just a thread", CreatedByID: "np_owner"})

	c, w := testContext("POST", "/api/threads/t_plain/poll-vote", map[string]int{"optionIndex": 0})
	c.Params = gin.Params{{Key: "id", Value: "t_plain"}}
	c.Set("userId", "voter")
	VoteOnPoll(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not a poll")
}
