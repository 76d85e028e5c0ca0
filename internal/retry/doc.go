// Package retry provides automatic retry logic with exponential backoff
// for transient database connection failures.
//
// # Example Usage
//
//	classifier := retry.NewFirebirdErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return connectToDatabase(ctx)
//	})
//
// Only connection establishment is retried. Statements are never retried:
// a script statement that fails once fails the run.
package retry
