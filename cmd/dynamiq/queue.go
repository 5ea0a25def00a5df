package main

import (
	"fmt"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-dynamiq/pkg/broker/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type QueueCommands struct {
	ListQueue      ListQueueCommand      `cmd:"" name:"queues" help:"List queues." group:"QUEUE"`
	GetQueue       GetQueueCommand       `cmd:"" name:"queue" help:"Get queue." group:"QUEUE"`
	CreateQueue    CreateQueueCommand    `cmd:"" name:"create-queue" help:"Create queue." group:"QUEUE"`
	DeleteQueue    DeleteQueueCommand    `cmd:"" name:"delete-queue" help:"Delete queue." group:"QUEUE"`
	ConfigureQueue ConfigureQueueCommand `cmd:"" name:"configure-queue" help:"Configure queue." group:"QUEUE"`
}

type ListQueueCommand struct{}

type GetQueueCommand struct {
	Name string `arg:"" name:"name" help:"Queue name"`
}

type CreateQueueCommand struct {
	Name string `arg:"" name:"name" help:"Queue name"`
}

type DeleteQueueCommand struct {
	Name string `arg:"" name:"name" help:"Queue name"`
}

type ConfigureQueueCommand struct {
	Name       string         `arg:"" name:"name" help:"Queue name"`
	TTL        *time.Duration `name:"ttl" help:"Time-to-live for queue messages"`
	Retries    *uint64        `name:"retries" help:"Number of delivery retries before failing"`
	RetryDelay *time.Duration `name:"retry-delay" help:"Backoff delay between deliveries"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListQueueCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("ListQueueCommand")
	defer func() { endSpan(err) }()

	// List queues
	queues, err := client.ListQueues(parent)
	if err != nil {
		return err
	}

	// Print
	fmt.Println(schema.QueueList{Queues: queues})
	return nil
}

func (cmd *GetQueueCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("GetQueueCommand")
	defer func() { endSpan(err) }()

	// Get one queue
	queue, err := client.GetQueue(parent, cmd.Name)
	if err != nil {
		return err
	}

	// Print
	fmt.Println(queue)
	return nil
}

func (cmd *CreateQueueCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("CreateQueueCommand")
	defer func() { endSpan(err) }()

	// Create queue
	return client.CreateQueue(parent, cmd.Name)
}

func (cmd *DeleteQueueCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("DeleteQueueCommand")
	defer func() { endSpan(err) }()

	// Delete queue
	return client.DeleteQueue(parent, cmd.Name)
}

func (cmd *ConfigureQueueCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("ConfigureQueueCommand")
	defer func() { endSpan(err) }()

	// Apply the configuration
	return client.ConfigureQueue(parent, cmd.Name, schema.QueueMeta{
		TTL:        cmd.TTL,
		Retries:    cmd.Retries,
		RetryDelay: cmd.RetryDelay,
	})
}
