// Package pool caches repeat-character mask strings ("****...") so the
// masking engine's full and partial modes never allocate the same
// (character, length) string twice for lengths up to 128; longer strings
// are built fresh on every call.
//
// Decoration runs re-request identical mask strings constantly -- every
// "PASSWORD"-shaped entry on a line gets the same eight asterisks -- so a
// small bounded cache pays for itself even within a single buffer's
// redraw.
package pool
