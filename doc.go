// Package cachekit provides building blocks for bounded, access-aware caches.
//
// lptable is a fixed-capacity open addressing index with linear probing and
// backward-shift deletion. It caps admission with a maximum load factor and
// never rehashes.
//
// cachelist is a sentinel-bounded list that counts successful searches and
// moves the searched element ahead of the first element with an equal or
// lower count, giving an approximate most-used-first order.
//
// simpletable is an unsorted array table with the same Table contract as
// lptable, and threadedtree is an ordered set that iterates over thread
// links without a stack.
//
// Cache composes lptable and cachelist into an evicting cache. Unlike the
// building blocks it can take a lock; by default it does not. Sharded splits
// keys over several locked caches.
package cachekit
