package gamefactory

import (
	"github.com/sirupsen/logrus"

	"github.com/JanBanasik/PokerGame/pkg/playable"
	"github.com/JanBanasik/PokerGame/pkg/playable/poker/fivecarddraw"
)

type fiveCardDrawFactory struct{}

func (f fiveCardDrawFactory) CreateGame(logger logrus.FieldLogger, messenger playable.Messenger, additionalData playable.AdditionalData) (playable.Playable, error) {
	opts := getFiveCardDrawOptions(additionalData)

	game, err := fivecarddraw.NewGame(logger, messenger, opts)
	if err != nil {
		return nil, err
	}

	if err := game.Configure(opts.MaxPlayers, opts.Ante); err != nil {
		return nil, err
	}

	return game, nil
}

func (f fiveCardDrawFactory) Details(additionalData playable.AdditionalData) (string, int, error) {
	opts := getFiveCardDrawOptions(additionalData)
	return "Five Card Draw", opts.Ante, nil
}

func getFiveCardDrawOptions(additionalData playable.AdditionalData) fivecarddraw.Options {
	opts := fivecarddraw.DefaultOptions()

	if maxPlayers, ok := additionalData.GetInt("maxPlayers"); ok {
		opts.MaxPlayers = maxPlayers
	}

	if ante, ok := additionalData.GetInt("ante"); ok {
		opts.Ante = ante
	}

	return opts
}
