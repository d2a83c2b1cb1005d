package usecase

import (
	"time"

	"feedback-portal/internal/data/entity"
	"feedback-portal/internal/policy"
	"feedback-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var testLogger = zap.NewNop()

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{
			Secret:     "test-secret",
			TTL:        time.Hour,
			CookieName: "feedback_session",
		},
	}
}

func actorWith(roles ...entity.Role) policy.Actor {
	return policy.Actor{
		UserID:   uuid.New(),
		Username: "user-" + uuid.NewString()[:8],
		Roles:    entity.Roles(roles),
	}
}
