// Package growthbook provides a Go client SDK for the GrowthBook
// feature flagging and A/B testing platform.
//
// A Client is built from options, evaluates features and experiments
// deterministically with no network calls, and can be backed by a
// FeatureRepository that keeps feature definitions fresh in the
// background:
//
//	client, err := growthbook.NewClient(ctx,
//		growthbook.WithClientKey("sdk-abc123"),
//		growthbook.WithAttributes(growthbook.Attributes{"id": "user-1"}),
//	)
//	if err != nil { ... }
//	defer client.Close()
//
//	if err := client.EnsureLoaded(ctx); err != nil { ... }
//	res := client.EvalFeature(ctx, "my-feature")
//	if res.On { ... }
//
// Per-request evaluation uses cheap child clients that share the
// feature source:
//
//	c, _ := client.WithAttributes(growthbook.Attributes{"id": userID})
//	res := c.EvalFeature(ctx, "my-feature")
package growthbook
