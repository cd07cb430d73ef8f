/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import "errors"

var (
	ErrPlayerCount   = errors.New("player count out of range")
	ErrUnknownGame   = errors.New("unknown game")
	ErrDuplicateGame = errors.New("game already registered")
	ErrPoolTooSmall  = errors.New("pool too small")
)
