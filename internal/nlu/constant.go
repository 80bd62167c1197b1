package nlu

// Log prefixes
const (
	LogPrefixClassify         = "internal.nlu.Classify"
	LogPrefixClassifyAdvanced = "internal.nlu.ClassifyAdvanced"
)

// ClassifierTemperature keeps extraction output deterministic.
const ClassifierTemperature = 0.1

// PromptContextPrefix introduces accumulated session context.
const PromptContextPrefix = "Conversation so far:\n"

// PromptClassifySystem instructs the model to extract intent and entities as
// strict JSON. The %s placeholder receives the utterance.
const PromptClassifySystem = `You are the intent classifier for an errand-routing assistant.
Given one user utterance, extract the intent and entities.

Valid intents:
- navigate_with_stops: go somewhere with one or more stops on the way
- navigate_direct: go somewhere with no stops
- find_place: look for a place without committing to a route
- add_stop: add a stop to the current route
- remove_stop: remove a stop from the current route
- modify_route: change the current route in another way
- get_suggestions: ask for stop or place suggestions
- set_anchor: save a named location (e.g. "remember this as home")
- confirm: agree with the assistant's last question
- deny: reject the assistant's last question
- cancel: abandon the current route or request
- unknown: none of the above

Respond with ONLY a JSON object, no prose, no markdown:
{"intent": "<intent>", "destination": "<destination or empty>", "stops": ["<stop name>", ...], "confidence": <0.0-1.0>, "requires_advanced": <true if the utterance needs deeper reasoning>}

Utterance: %s`
