package reservation

// SelectRate returns the rate to display alongside an availability record:
// the first rate whose room type name matches exactly, otherwise the first
// rate in the list, otherwise nil. The fallback is deliberately loose:
// the rate lookup may return coarser results than the availability lookup,
// and an arbitrary rate keeps the result populated instead of empty.
// First match wins, so the result is deterministic for a given input order.
func SelectRate(avail Availability, rates []Rate) *Rate {
	for i := range rates {
		if rates[i].RoomTypeName == avail.RoomTypeName {
			return &rates[i]
		}
	}
	if len(rates) > 0 {
		return &rates[0]
	}
	return nil
}
