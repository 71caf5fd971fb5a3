// Package match ranks resource keys by similarity so a lookup of an
// unknown key can suggest the keys that were probably meant.
package match
