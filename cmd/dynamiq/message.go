package main

import (
	"context"
	"fmt"
	"io"
	"os"

	// Packages
	broker "github.com/mutablelogic/go-dynamiq/pkg/broker"
	schema "github.com/mutablelogic/go-dynamiq/pkg/broker/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type MessageCommands struct {
	Enqueue EnqueueCommand `cmd:"" name:"enqueue" help:"Enqueue message to queue." group:"MESSAGE"`
	Receive ReceiveCommand `cmd:"" name:"receive" help:"Receive messages from queue." group:"MESSAGE"`
	Ack     AckCommand     `cmd:"" name:"ack" help:"Acknowledge messages." group:"MESSAGE"`
	Consume ConsumeCommand `cmd:"" name:"consume" help:"Consume messages until interrupted." group:"MESSAGE"`
}

type EnqueueCommand struct {
	Queue string `arg:"" name:"queue" help:"Queue name"`
	Data  string `arg:"" optional:"" name:"data" help:"Message body (reads stdin when omitted)"`
}

type ReceiveCommand struct {
	Queue string `arg:"" name:"queue" help:"Queue name"`
	Batch uint64 `name:"batch" help:"Number of messages to receive"`
}

type AckCommand struct {
	Queue string   `arg:"" name:"queue" help:"Queue name"`
	Ids   []string `arg:"" name:"ids" help:"Message ids"`
}

type ConsumeCommand struct {
	Queue   string `arg:"" name:"queue" help:"Queue name"`
	Workers int    `name:"workers" help:"Number of concurrent handlers" default:"4"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *EnqueueCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// Read the body from the argument or stdin
	data := []byte(cmd.Data)
	if cmd.Data == "" {
		if data, err = io.ReadAll(os.Stdin); err != nil {
			return err
		}
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("EnqueueCommand")
	defer func() { endSpan(err) }()

	// Enqueue the message
	id, err := client.Enqueue(parent, cmd.Queue, data)
	if err != nil {
		return err
	}

	// Print the message id
	fmt.Println(id)
	return nil
}

func (cmd *ReceiveCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("ReceiveCommand")
	defer func() { endSpan(err) }()

	// Receive a batch of messages
	messages, err := client.Receive(parent, cmd.Queue, cmd.Batch)
	if err != nil {
		return err
	}

	// Print
	for _, message := range messages {
		fmt.Println(message)
	}
	return nil
}

func (cmd *AckCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("AckCommand")
	defer func() { endSpan(err) }()

	// A single id uses the one-message form
	if len(cmd.Ids) == 1 {
		return client.Acknowledge(parent, cmd.Queue, cmd.Ids[0])
	}

	// Acknowledge the set of messages
	count, err := client.AcknowledgeMany(parent, cmd.Queue, cmd.Ids)
	if err != nil {
		return err
	}

	// Print the deletion count
	fmt.Println(count)
	return nil
}

func (cmd *ConsumeCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// Create the worker pool and print each message as it arrives
	pool, err := broker.NewWorkerPool(client, broker.WithWorkers(cmd.Workers))
	if err != nil {
		return err
	}
	if err := pool.RegisterQueue(ctx.ctx, cmd.Queue, nil, func(_ context.Context, _ string, message schema.Message) error {
		fmt.Println(message)
		return nil
	}); err != nil {
		return err
	}

	// Run until interrupted
	return pool.Run(ctx.ctx)
}
