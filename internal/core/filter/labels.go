package filter

import "strconv"

// FriendCap is the friend count at which labels read "N+"
const FriendCap = 10

// CountText renders the result count for display
func CountText(n int) string {
	if n == 1 {
		return "Showing 1 stream"
	}
	return "Showing " + strconv.Itoa(n) + " streams"
}

// FriendLabel renders a friend window bound
func FriendLabel(n int) string {
	if n >= FriendCap {
		return strconv.Itoa(FriendCap) + "+"
	}
	return strconv.Itoa(n)
}

// EmptyText is shown in place of an empty result
const EmptyText = "No streams found."
