/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

const (
	AgeGameID        = "adivina-edad"
	ChronologyGameID = "cual-fue-primero"
	MatchGameID      = "pelimojis"
)

func NewAgeGame(pool Pool) *Definition {
	return &Definition{
		ID:           AgeGameID,
		Title:        "¿Adivina la Edad?",
		Instructions: "¡Adivina si la celebridad de la derecha es MAYOR o MENOR!",
		Description:  "¿Sabías que Tom Cruise tiene más años que Leonardo DiCaprio? Tu ojo crítico y conocimiento pop se ponen a prueba.",
		Badges:       []string{"FAMOSOS", "EDADES"},
		Kind:         RoundPair,
		Evaluator:    AgeEvaluator,
		Policy:       AdvanceOnMiss,
		RevealAnchor: true,
		Unit:         "años",
		Pool:         pool,
	}
}

func NewChronologyGame(pool Pool) *Definition {
	return &Definition{
		ID:           ChronologyGameID,
		Title:        "¿Cuál fue primero?",
		Instructions: "Selecciona el invento que se creó PRIMERO (el más antiguo).",
		Description:  "¿El encendedor existía antes que la cerilla? Cada ronda es un viaje en el tiempo donde tu conocimiento histórico se pone a prueba.",
		Badges:       []string{"HISTORIA", "INVENTOS"},
		Kind:         RoundPair,
		Evaluator:    ChronologyEvaluator,
		Policy:       AdvanceOnMiss,
		Pool:         pool,
	}
}

// NewMatchGame builds the emoji game. Its turn rule was never settled, so
// the caller picks it.
func NewMatchGame(pool Pool, policy Policy) *Definition {
	return &Definition{
		ID:           MatchGameID,
		Title:        "Pelimojis",
		Instructions: "Adivina la película. Si aciertas, sigues jugando. Si fallas, ¡next!",
		Description:  "Cada ronda te muestra una secuencia de emojis que esconde el título de una película o serie.",
		Badges:       []string{"CINE", "EMOJIS"},
		Kind:         RoundChoice,
		Evaluator:    MatchEvaluator,
		Policy:       policy,
		Choices:      DefaultChoices,
		Pool:         pool,
	}
}
