package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

func FormatRoomKey(roomCode string) string {
	return fmt.Sprintf("room:%s", roomCode)
}

func FormatRoomMembersKey(roomCode string) string {
	return fmt.Sprintf("room:%s:members", roomCode)
}

func FormatRoundVotesKey(roomCode string, round int) string {
	return fmt.Sprintf("room:%s:round:%d:votes", roomCode, round)
}

// ActiveRoomCodesKey is the set of codes currently in use. Room creation
// reserves a code here so that rejection sampling sees a consistent view.
const ActiveRoomCodesKey = "rooms:active"
