package main

import (
	"fmt"
	"io"
	"os"

	// Packages
	schema "github.com/mutablelogic/go-dynamiq/pkg/broker/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type TopicCommands struct {
	ListTopic   ListTopicCommand   `cmd:"" name:"topics" help:"List topics." group:"TOPIC"`
	CreateTopic CreateTopicCommand `cmd:"" name:"create-topic" help:"Create topic." group:"TOPIC"`
	DeleteTopic DeleteTopicCommand `cmd:"" name:"delete-topic" help:"Delete topic." group:"TOPIC"`
	Subscribe   SubscribeCommand   `cmd:"" name:"subscribe" help:"Subscribe queue to topic." group:"TOPIC"`
	Publish     PublishCommand     `cmd:"" name:"publish" help:"Publish message to topic." group:"TOPIC"`
}

type ListTopicCommand struct{}

type CreateTopicCommand struct {
	Name string `arg:"" name:"name" help:"Topic name"`
}

type DeleteTopicCommand struct {
	Name string `arg:"" name:"name" help:"Topic name"`
}

type SubscribeCommand struct {
	Topic string `arg:"" name:"topic" help:"Topic name"`
	Queue string `arg:"" name:"queue" help:"Queue name"`
}

type PublishCommand struct {
	Topic string `arg:"" name:"topic" help:"Topic name"`
	Data  string `arg:"" optional:"" name:"data" help:"Message body (reads stdin when omitted)"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListTopicCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("ListTopicCommand")
	defer func() { endSpan(err) }()

	// List topics
	topics, err := client.ListTopics(parent)
	if err != nil {
		return err
	}

	// Print
	fmt.Println(schema.TopicList{Topics: topics})
	return nil
}

func (cmd *CreateTopicCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("CreateTopicCommand")
	defer func() { endSpan(err) }()

	// Create topic
	return client.CreateTopic(parent, cmd.Name)
}

func (cmd *DeleteTopicCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("DeleteTopicCommand")
	defer func() { endSpan(err) }()

	// Delete topic
	return client.DeleteTopic(parent, cmd.Name)
}

func (cmd *SubscribeCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := ctx.StartSpan("SubscribeCommand")
	defer func() { endSpan(err) }()

	// Subscribe the queue to the topic
	queues, err := client.Subscribe(parent, cmd.Topic, cmd.Queue)
	if err != nil {
		return err
	}

	// Print
	fmt.Println(schema.QueueList{Queues: queues})
	return nil
}

func (cmd *PublishCommand) Run(ctx *Globals) (err error) {
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
	parent, endSpan := ctx.StartSpan("PublishCommand")
	defer func() { endSpan(err) }()

	// Publish the message
	receipt, err := client.Publish(parent, cmd.Topic, data)
	if err != nil {
		return err
	}

	// Print
	fmt.Println(receipt)
	return nil
}
