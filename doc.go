/*
Package bkv implements typed containers on top of a flat ordered key-value
store (Bolt or an in-memory tree).

We implement:

1. Buckets, collections of arbitrary values marshaled from a given type and
keyed by caller-supplied byte keys.

2. Indexed buckets, adding a single non-unique secondary index that is kept
consistent with primary data across every insert, update and delete.

3. Singletons, storing one typed value per namespace (say, a “config”
value).

4. Sequences, issuing monotonically increasing persistent counters.

5. Prefixed storage views, exposing a namespace-confined slice of a store as
a store of its own.

# Technical Details

**Storage.**
All state lives in a Storage, a sorted byte-keyed map with Get, Set, Remove
and ordered Scan. Containers are stateless views over it: a container holds
nothing but precomputed prefixes, a codec and an indexer, can be recreated
at will, and all its data outlives it. MemStorage keeps data in an ordered
in-memory tree; BoltStorage persists it in a single Bolt file, one Bolt
transaction per call.

**Key encoding.**
Containers claim sub-spaces of the flat keyspace with length-prefixed
frames: frame(seg) is a 2-byte big-endian length followed by the segment
bytes. A bucket with namespace ns stores a value for key pk at
frame(ns) ++ pk. An indexed bucket splits its namespace into two framed
sub-spaces, frame(ns) ++ frame("pk") ++ pk for primary data and
frame(ns) ++ frame("idx") ++ frame(ik) ++ pk for index markers. Framing
makes concatenation unambiguous, so sub-spaces never collide whatever bytes
namespaces, index keys and primary keys contain.

**Index markers.**
An index entry is a presence marker: the key records that the value stored
at pk currently maps to index key ik, and the stored value is empty. The
index is a cache over primary data and can always be rebuilt by rescanning
it (see IndexedBucket.Reindex).

**Values.**
Values are opaque bytes produced by a pluggable codec (see package codec);
MessagePack by default.

**Ownership.**
Containers perform no locking and assume a single exclusive writer per
namespace. Backends are safe for concurrent raw access, and each backend
documents how its scans behave when the store is mutated mid-iteration.
*/
package bkv
