// Package sui is a Go interface into the Sui blockchain.
//
// It covers the client workflow end to end: loading or creating a local
// wallet, requesting funds from a faucet, locating coin objects, building
// programmable transactions from chained commands, signing them with an
// intent-scoped signature, and submitting them to the network.
//
// Quick links:
//
//   - [Sui Docs] for learning more about Sui and how to use it.
//   - [Examples] are standalone runnable examples of how to use the SDK.
//
// You can build, sign, and submit a split-and-merge transaction with the
// below example:
//
//	// Load the wallet and a client, funding the sender if needed
//	ctx := context.Background()
//	client, sender, _, err := sui.SetupForWrite(ctx)
//	if err != nil {
//	panic("Failed to set up wallet: " + err.Error())
//	}
//
//	// Find the coin to use as gas
//	coin, err := client.FetchCoinOrRequestFunds(ctx, sender, sui.SuiCoinType, sui.DefaultFundThreshold)
//	if err != nil {
//	panic("Failed to fetch a coin: " + err.Error())
//	}
//	gasRef, err := sui.CoinObjectRef(coin)
//	if err != nil {
//	panic("Failed to reference the coin: " + err.Error())
//	}
//
//	// Chain two commands: split off the gas coin, merge the result back
//	ptb := sui.NewProgrammableTransactionBuilder()
//	amount, _ := ptb.Pure(uint64(1_000))
//	split, _ := ptb.Command(&sui.SplitCoins{Coin: sui.GasCoinArgument(), Amounts: []sui.Argument{amount}})
//	_, _ = ptb.Command(&sui.MergeCoins{Destination: sui.GasCoinArgument(), Sources: []sui.Argument{split}})
//	pt, err := ptb.Finish()
//	if err != nil {
//	panic("Failed to finish the transaction: " + err.Error())
//	}
//
//	// Assemble, sign from the keystore, and submit
//	gasPrice, _ := client.GetReferenceGasPrice(ctx)
//	txData, _ := sui.NewProgrammableTransactionData(sender, []sui.ObjectRef{gasRef}, pt, sui.DefaultGasBudget, gasPrice)
//	wallet, _ := sui.RetrieveWallet()
//	signedTxn, err := wallet.Keystore.SignTransaction(sender, txData)
//	if err != nil {
//	panic("Failed to sign the transaction: " + err.Error())
//	}
//	response, err := client.ExecuteTransactionBlock(ctx, signedTxn, api.FullTransactionBlockResponseOptions(), api.WaitForLocalExecution)
//	if err != nil {
//	panic("Failed to submit the transaction: " + err.Error())
//	}
//	fmt.Printf("The transaction completed with digest: %s\n", response.Digest)
//
// [Examples]: https://github.com/BigdraCo1/sui-object-model-workshop/tree/main/examples
//
// [Sui Docs]: https://docs.sui.io
package sui
