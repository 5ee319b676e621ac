package notifications

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alertdeck-dev/alertdeck/internal/models"
	"gorm.io/gorm"
)

// ErrUnsupportedChannel is returned by Get for unknown channel names.
// Callers must surface it rather than fall back to another channel.
var ErrUnsupportedChannel = errors.New("unsupported notification channel")

const ChannelInApp = "IN_APP"

// Channel delivers a notification for a (user, alert) pair. Send stages
// exactly one delivery log entry on tx and must not commit; the caller owns
// the transaction boundary.
type Channel interface {
	Name() string
	Send(tx *gorm.DB, user models.User, alert models.Alert, now time.Time) (*models.NotificationDelivery, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Channel)
)

// Register makes a channel available by name. Names are case-insensitive.
func Register(channel Channel) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[strings.ToUpper(channel.Name())] = channel
}

// Get returns the channel registered under name.
func Get(name string) (Channel, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	channel, ok := registry[strings.ToUpper(name)]

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChannel, name)
	}

	return channel, nil
}

func init() {
	Register(InAppChannel{})
}
