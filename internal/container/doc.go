// Package container implements the five container shapes compared by the
// harness and the catalog that enumerates them.
//
// Every shape satisfies Collection: bulk construction from an iter.Seq,
// non-consuming traversal (All), consuming traversal (Drain) and a deep,
// value-preserving Clone. The shapes are:
//
//	Slice    contiguous growable array, insertion order, keeps duplicates
//	Deque    contiguous ring buffer, insertion order, keeps duplicates
//	List     doubly-linked nodes, insertion order, keeps duplicates
//	HashSet  open addressing on Element.Hash, slot order, coalesces equal values
//	TreeSet  B-tree ordered by Element.Compare, ascending, coalesces equal values
//
// The duplicate policy differs between sequence and set shapes on purpose:
// it is part of what is being measured.
//
// Drain transfers ownership of the elements to the caller. Once Drain has
// been called the collection is empty and its storage is no longer
// referenced by it. Abandoning a Drain early discards the remaining elements.
package container
