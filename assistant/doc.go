// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package assistant implements the campaign chat.

Chat.HandleMessage classifies a message, dispatches analytics intents to an
Insights implementation and everything else to a Responder. Fallback is the
standard Responder: it asks a TextGenerator first and uses static rules when
the generator is missing, rate limited, slow, or failing.

	chat := assistant.NewChat(insight.New(store), assistant.NewFallback(client, m), m)
	reply := chat.HandleMessage(ctx, "how are female voters leaning?")

Every path returns a string. No conversation history is kept.
*/
package assistant
