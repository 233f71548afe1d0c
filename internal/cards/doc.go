// Package cards turns aligned subtitle pairs into phrase cards and per-chapter
// word cards.
//
// Card text fields are keyed by language code in JSON ("it", "de", ...), so a
// card carries the Languages it was built for and renders itself through a
// custom MarshalJSON. Builders are pure: the same pairs and options always
// produce the same cards in the same order.
package cards
