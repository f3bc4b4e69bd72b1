package controllers

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"backend/config"
	"backend/models"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

// AnalysisWSController serves the authenticated analysis stream. Each
// connection belongs to one user; each analyze-image event runs one session.
type AnalysisWSController struct {
	Hub      *services.AnalysisHub
	Analyzer services.FoodAnalyzer
	Saver    services.ResultSaver
	Cfg      *config.Config
}

func NewAnalysisWSController(hub *services.AnalysisHub, analyzer services.FoodAnalyzer, saver services.ResultSaver, cfg *config.Config) *AnalysisWSController {
	return &AnalysisWSController{Hub: hub, Analyzer: analyzer, Saver: saver, Cfg: cfg}
}

// handshakeToken pulls the bearer token from the auth query parameter or the
// token header, the two places clients put it at handshake.
func handshakeToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	return r.Header.Get("token")
}

// AnalyzeWS upgrades the connection and runs its event loop. A missing or
// invalid token rejects the connection before any event is processed.
func (ac *AnalysisWSController) AnalyzeWS(c *gin.Context) {
	token := handshakeToken(c.Request)
	if token == "" {
		utils.Logger.Warnw("socket connection attempted without token", "remote", c.Request.RemoteAddr)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication error: Token required"})
		return
	}

	user, err := utils.VerifyJWT([]byte(ac.Cfg.JWTSecret), token)
	if err != nil {
		utils.Logger.Warnw("socket authentication failed", "remote", c.Request.RemoteAddr, "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication error: Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := &services.WSClient{UserUUID: user.UUID, Conn: conn}
	ac.Hub.Register(client)
	utils.Logger.Infow("socket connected",
		"userId", user.UUID, "connections", ac.Hub.CountForUser(user.UUID))

	_ = client.Emit("welcome", gin.H{"message": "Welcome " + user.Email})

	done := make(chan struct{})
	go ac.pingLoop(client, done)

	ac.readLoop(c, client, user)

	close(done)
	ac.Hub.Unregister(client)
	utils.Logger.Infow("socket disconnected", "userId", user.UUID)
}

// pingLoop keeps the connection alive through proxies.
func (ac *AnalysisWSController) pingLoop(client *services.WSClient, done <-chan struct{}) {
	t := time.NewTicker(25 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			if err := client.Ping(); err != nil {
				return
			}
		}
	}
}

func (ac *AnalysisWSController) readLoop(c *gin.Context, client *services.WSClient, user models.UserPayload) {
	// One in-flight session per connection: a second analyze-image while one
	// is running is rejected rather than racing two event streams.
	var inFlight atomic.Bool

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			return
		}

		var evt services.WSEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			_ = client.Emit(services.EventAnalysisError, services.ErrorPayload{Message: "Malformed event"})
			continue
		}

		switch evt.Event {
		case services.EventHeartbeat:
			_ = client.Emit(services.EventHeartbeat, gin.H{"time": time.Now().UTC().Format(time.RFC3339)})

		case services.EventAnalyzeImage:
			var req services.AnalysisRequest
			if evt.Data != nil {
				data, _ := json.Marshal(evt.Data)
				if err := json.Unmarshal(data, &req); err != nil {
					_ = client.Emit(services.EventAnalysisError, services.ErrorPayload{Message: "Malformed analysis request"})
					continue
				}
			}
			if req.ImageURL == "" {
				_ = client.Emit(services.EventAnalysisError, services.ErrorPayload{Message: "Image URL is required"})
				continue
			}
			if !inFlight.CompareAndSwap(false, true) {
				_ = client.Emit(services.EventAnalysisError, services.ErrorPayload{Message: "Analysis already in progress"})
				continue
			}

			// Session events go through the hub so every connection the
			// user holds sees the analysis, not just the one that sent it.
			session := services.NewAnalysisSession(user, ac.Analyzer, ac.Saver, ac.Hub.StreamFor(user.UUID))
			go func() {
				defer inFlight.Store(false)
				session.Run(c.Request.Context(), req)
			}()

		default:
			utils.Logger.Debugw("ignoring unknown socket event", "event", evt.Event, "userId", user.UUID)
		}
	}
}
