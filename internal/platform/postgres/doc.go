// Package postgres contains the PostgreSQL implementations of the store
// interfaces. All access goes through parameterized queries against a
// store.DBTX, so every store can run on a plain connection pool or inside a
// transaction. Database errors are translated to store sentinels by MapError.
package postgres
