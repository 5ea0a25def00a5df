// Package httpclient provides a typed Go client for the Dynamiq broker
// REST API.
//
// Create a client with:
//
//	client, err := httpclient.New("http://localhost:8081")
//	if err != nil {
//	   panic(err)
//	}
//
// Then use the client to manage topics and queues:
//
//	err := client.CreateTopic(ctx, "events")
//	err = client.CreateQueue(ctx, "worker")
//	queues, err := client.Subscribe(ctx, "events", "worker")
//
// Publish to a topic (fanned out to all subscribed queues), or enqueue
// directly to a queue:
//
//	receipt, err := client.Publish(ctx, "events", []byte(`{"hello":"world"}`))
//	id, err := client.Enqueue(ctx, "worker", []byte(`{"hello":"world"}`))
//
// Receive a batch of messages and acknowledge them once processed:
//
//	messages, err := client.Receive(ctx, "worker", 10)
//	for _, message := range messages {
//	   // ...
//	   err = client.Acknowledge(ctx, "worker", message.Id)
//	}
//
// All operations return typed errors which can be branched on with
// errors.Is against the dynamiq error kinds.
package httpclient
