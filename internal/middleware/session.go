package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionKey    = "sid"
	contextKeySID = "session_id"
)

// SessionID 确保每个浏览器会话都有一个 ID，结果集按它保存
// 需要放在 sessions.Sessions 之后
func SessionID(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		sid, _ := session.Get(sessionKey).(string)
		if sid == "" {
			sid = uuid.NewString()
			session.Set(sessionKey, sid)
			if err := session.Save(); err != nil {
				logger.Warn("保存会话失败", zap.Error(err))
			}
		}
		c.Set(contextKeySID, sid)
		c.Next()
	}
}

// GetSessionID 从上下文获取会话 ID
func GetSessionID(c *gin.Context) string {
	return c.GetString(contextKeySID)
}
