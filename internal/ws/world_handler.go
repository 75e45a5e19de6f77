package ws

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"

	"github.com/roboexplore/backend/internal/config"
	"github.com/roboexplore/backend/internal/geo"
	"github.com/roboexplore/backend/internal/sim"
)

// WorldHub is the global hub for world session connections
var WorldHub = NewHub()

var (
	worldManager *sim.WorldManager
	wsConfig     *config.Config

	tickerMu     sync.Mutex
	worldTickers = make(map[string]chan struct{})
)

func init() {
	go runWorldHub()
}

// Init wires the world manager and config into the websocket layer.
// Must be called before the first connection is accepted.
func Init(manager *sim.WorldManager, cfg *config.Config) {
	worldManager = manager
	wsConfig = cfg
}

func generateClientID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("client_%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}

// FireData is the payload of a "fire" message, the aim point in world space
type FireData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlatformsData toggles the level's platform obstacles
type PlatformsData struct {
	Enabled bool `json:"enabled"`
}

// HandleWebSocket upgrades the connection after validating the session token
func HandleWebSocket(c *gin.Context) {
	if worldManager == nil || wsConfig == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "websocket layer not initialized"})
		return
	}

	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
		return
	}

	worldToken, playerID, err := validateSessionToken(tokenString)
	if err != nil {
		log.Printf("[WS] rejected connection: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if _, err := worldManager.GetWorld(worldToken); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "world not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}

	client := &Client{
		conn:       conn,
		clientID:   generateClientID(),
		playerID:   playerID,
		worldToken: worldToken,
		send:       make(chan []byte, 256),
	}

	WorldHub.register <- client

	go client.writePump()
	go client.readPump()
}

// validateSessionToken checks the HS256 signature and extracts the
// world token and player id claims
func validateSessionToken(tokenString string) (string, int, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(wsConfig.JWTSecret), nil
	})
	if err != nil {
		return "", 0, err
	}
	if !parsed.Valid {
		return "", 0, fmt.Errorf("token not valid")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, fmt.Errorf("unexpected claims type")
	}

	worldToken, ok := claims["world_token"].(string)
	if !ok || worldToken == "" {
		return "", 0, fmt.Errorf("missing world_token claim")
	}

	playerIDf, ok := claims["player_id"].(float64)
	if !ok {
		return "", 0, fmt.Errorf("missing player_id claim")
	}

	return worldToken, int(playerIDf), nil
}

func runWorldHub() {
	for {
		select {
		case client := <-WorldHub.register:
			WorldHub.mu.Lock()
			WorldHub.clients[client.clientID] = client

			room, exists := WorldHub.worldRooms[client.worldToken]
			if !exists {
				room = make(map[string]*Client)
				WorldHub.worldRooms[client.worldToken] = room
			}
			room[client.clientID] = client
			WorldHub.mu.Unlock()

			log.Printf("[WS] client %s joined world %s (player %d)",
				client.clientID, client.worldToken, client.playerID)

			startWorldTicker(client.worldToken)

		case client := <-WorldHub.unregister:
			WorldHub.mu.Lock()
			if _, exists := WorldHub.clients[client.clientID]; exists {
				delete(WorldHub.clients, client.clientID)
				close(client.send)
			}

			roomEmpty := false
			if room, exists := WorldHub.worldRooms[client.worldToken]; exists {
				delete(room, client.clientID)
				if len(room) == 0 {
					delete(WorldHub.worldRooms, client.worldToken)
					roomEmpty = true
				}
			}
			WorldHub.mu.Unlock()

			log.Printf("[WS] client %s left world %s", client.clientID, client.worldToken)

			if roomEmpty {
				stopWorldTicker(client.worldToken)
			}
		}
	}
}

// startWorldTicker starts the simulation loop for a world when the
// first client joins. No-op if the loop is already running.
func startWorldTicker(worldToken string) {
	tickerMu.Lock()
	defer tickerMu.Unlock()

	if _, running := worldTickers[worldToken]; running {
		return
	}

	stop := make(chan struct{})
	worldTickers[worldToken] = stop

	go runWorldTicker(worldToken, stop)
}

func stopWorldTicker(worldToken string) {
	tickerMu.Lock()
	defer tickerMu.Unlock()

	if stop, running := worldTickers[worldToken]; running {
		close(stop)
		delete(worldTickers, worldToken)
	}
}

// runWorldTicker advances one world at the configured tick rate and
// broadcasts the state after every step. The world only simulates
// while someone is connected to it.
func runWorldTicker(worldToken string, stop chan struct{}) {
	world, err := worldManager.GetWorld(worldToken)
	if err != nil {
		log.Printf("[TICK] world %s vanished before first tick: %v", worldToken, err)
		return
	}

	tickRate := wsConfig.TickRateHz
	if tickRate <= 0 {
		tickRate = 30
	}
	dt := 1.0 / float64(tickRate)

	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	saveTicker := time.NewTicker(5 * time.Second)
	defer func() {
		ticker.Stop()
		saveTicker.Stop()
		worldManager.SaveWorld(worldToken)
		log.Printf("[TICK] world %s loop stopped", worldToken)
	}()

	log.Printf("[TICK] world %s loop started at %d Hz", worldToken, tickRate)

	for {
		select {
		case <-stop:
			return

		case <-saveTicker.C:
			worldManager.SaveWorld(worldToken)

		case <-ticker.C:
			world.Step(dt)
			broadcastWorldState(worldToken, world)
		}
	}
}

func broadcastWorldState(worldToken string, world *sim.World) {
	state := world.Snapshot()
	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("[TICK] failed to marshal state for world %s: %v", worldToken, err)
		return
	}

	msg, _ := json.Marshal(WSMessage{Type: "world_state", Data: data})
	WorldHub.BroadcastToWorld(worldToken, msg)
}

// readPump pumps messages from the websocket connection to the world
func (c *Client) readPump() {
	defer func() {
		WorldHub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] read error from client %s: %v", c.clientID, err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			sendError(c, "invalid message format")
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg WSMessage) {
	world, err := worldManager.GetWorld(c.worldToken)
	if err != nil {
		sendError(c, "world no longer exists")
		return
	}

	switch msg.Type {
	case "input":
		var input sim.Input
		if err := json.Unmarshal(msg.Data, &input); err != nil {
			sendError(c, "invalid input payload")
			return
		}
		world.SetInput(input)

	case "fire":
		var fire FireData
		if err := json.Unmarshal(msg.Data, &fire); err != nil {
			sendError(c, "invalid fire payload")
			return
		}
		world.Fire(geo.NewVec2(fire.X, fire.Y))

	case "platforms":
		var platforms PlatformsData
		if err := json.Unmarshal(msg.Data, &platforms); err != nil {
			sendError(c, "invalid platforms payload")
			return
		}
		world.SetPlatformsEnabled(platforms.Enabled)

	case "get_state":
		state := world.Snapshot()
		data, err := json.Marshal(state)
		if err != nil {
			sendError(c, "failed to serialize state")
			return
		}
		reply, _ := json.Marshal(WSMessage{Type: "world_state", Data: data})
		WorldHub.SendToClient(c.clientID, reply)

	case "ping":
		reply, _ := json.Marshal(WSMessage{Type: "pong"})
		WorldHub.SendToClient(c.clientID, reply)

	default:
		sendError(c, fmt.Sprintf("unknown message type: %s", msg.Type))
	}
}
