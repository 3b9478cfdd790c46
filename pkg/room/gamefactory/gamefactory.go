package gamefactory

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/JanBanasik/PokerGame/pkg/playable"
)

var factories = map[string]GameFactory{
	"five-card-draw": fiveCardDrawFactory{},
}

// GameFactory is a factory for creating games that implement the Playable interface
type GameFactory interface {
	CreateGame(logger logrus.FieldLogger, messenger playable.Messenger, additionalData playable.AdditionalData) (playable.Playable, error)
	Details(additionalData playable.AdditionalData) (name string, ante int, err error)
}

// Get returns a factory by the given name
func Get(name string) (GameFactory, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("no factory with name: %s", name)
	}

	return factory, nil
}
