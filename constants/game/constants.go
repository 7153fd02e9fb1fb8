package game_constants

// Room configuration bounds. Impostor count is additionally capped at
// floor(maxPlayers/2) when a room is created.
const MinPlayersToStart = 3
const MinImpostorCount = 1

const DefaultMaxPlayers = 6
const DefaultImpostorCount = 1
const DefaultVoteTime = 60 // seconds

// Room code format: 6 characters drawn from [A-Z0-9], generated by rejection
// sampling against the set of currently active codes.
const RoomCodeLength = 6
const RoomCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
