// Package kvstore is an embedded key-value store on Badger, partitioned
// into named collections, whose failures are unified errors.
//
// Translate maps Badger failures: a missing key becomes KeyNotFound, a
// transaction conflict Conflict, a closed database Closed, checksum and
// truncation failures Corruption, misuse Unsupported, platform I/O errors
// an IO kind, and anything else ReportableBug. A missing collection is
// reported with its name when the name is valid UTF-8, and as
// InvalidByteToUTF8StringConversion otherwise.
//
//	store, err := kvstore.Create(dir, kvstore.Options{})
//	accounts, err := store.CreateCollection(ctx, []byte("accounts"))
//	err = accounts.Put(ctx, key, value)
//	res := accounts.Get(ctx, key)
package kvstore
