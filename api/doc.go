// Package api represents all types associated with the Sui JSON-RPC API.
// It handles JSON packing and un-packing for object lookups, coin queries,
// and transaction block responses.
//
// Quick links:
//
//   - [Sui JSON-RPC Reference] for an interactive documentation experience.
//
// [Sui JSON-RPC Reference]: https://docs.sui.io/sui-api-ref
package api
