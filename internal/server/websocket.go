package server

import (
	"encoding/json"
	"net/http"

	"github.com/Scrimzay/cookiewarriors/internal/types"
	"github.com/Scrimzay/cookiewarriors/internal/world"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleWebsocket upgrades a view connection, registers it for state frames
// and applies the actions it sends until it disconnects.
func HandleWebsocket(broadcaster *world.Broadcaster, gameWorld *world.World, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "websocket").Logger()

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Err(err).Msg("upgrade failed")
			return
		}

		if err := broadcaster.Register(conn); err != nil {
			log.Warn().Err(err).Msg("register failed")
			conn.Close()
			return
		}
		defer broadcaster.Unregister(conn)

		for {
			msgType, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if msgType != websocket.TextMessage {
				continue
			}

			action, err := dispatch(gameWorld, msg)
			if err == nil {
				continue
			}

			log.Debug().Err(err).Str("action", action).Msg("action rejected")
			reply := types.ErrorMessage{Type: types.MessageError, Action: action, Error: err.Error()}
			if err := broadcaster.Send(conn, reply); err != nil {
				log.Warn().Err(err).Msg("error reply failed")
				return
			}
		}
	}
}

type unknownActionError string

func (e unknownActionError) Error() string {
	return "unknown action " + string(e)
}

// dispatch decodes one client frame and applies it to the world. It returns
// the action name for error replies.
func dispatch(gameWorld *world.World, msg []byte) (string, error) {
	var base types.BaseAction
	if err := json.Unmarshal(msg, &base); err != nil {
		return "", err
	}

	switch base.Action {
	case types.ActionStartGame:
		return base.Action, gameWorld.StartGame()

	case types.ActionReturnToMenu:
		return base.Action, gameWorld.ReturnToMenu()

	case types.ActionDeploy:
		var deploy types.DeployAction
		if err := json.Unmarshal(msg, &deploy); err != nil {
			return base.Action, err
		}
		_, err := gameWorld.Deploy(deploy.X, deploy.Y)
		return base.Action, err

	case types.ActionSelect:
		var sel types.SelectAction
		if err := json.Unmarshal(msg, &sel); err != nil {
			return base.Action, err
		}
		gameWorld.Select(sel.CookieID)
		return base.Action, nil

	case types.ActionSetArchetype:
		var arch types.ArchetypeAction
		if err := json.Unmarshal(msg, &arch); err != nil {
			return base.Action, err
		}
		gameWorld.SetSelectedArchetype(arch.ArchetypeID)
		return base.Action, nil

	case types.ActionSetSpeed:
		var speed types.SpeedAction
		if err := json.Unmarshal(msg, &speed); err != nil {
			return base.Action, err
		}
		return base.Action, gameWorld.SetSpeed(speed.Multiplier)

	default:
		return base.Action, unknownActionError(base.Action)
	}
}
