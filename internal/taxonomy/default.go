package taxonomy

// Default returns the built-in software-diagram taxonomy, used when no
// taxonomy document is supplied. It carries the standard engineering
// diagram categories with their context indicator vocabularies and
// description prompts.
func Default() *Table {
	table, err := build(defaultDocument)
	if err != nil {
		// The built-in document is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return table
}

var defaultDocument = document{
	Categories: []string{
		"use case diagram",
		"c4 model diagram",
		"entity relationship diagram",
		"class diagram",
		"sequence diagram",
		"state diagram",
		"deployment diagram",
		"data flow diagram",
		"flowchart",
		"architecture diagram",
		"network diagram",
		"git workflow",
	},
	ContextIndicators: map[string][]string{
		"use case diagram":            {"use case", "actor", "actors", "system boundary"},
		"c4 model diagram":            {"c4", "context", "container", "component level"},
		"entity relationship diagram": {"entity", "relationship", "erd", "database model", "cardinality"},
		"class diagram":               {"class", "inheritance", "uml", "attributes", "methods"},
		"sequence diagram":            {"sequence", "message", "lifeline", "activation"},
		"state diagram":               {"state machine", "transitions", "states"},
		"deployment diagram":          {"deployment", "nodes", "infrastructure"},
		"data flow diagram":           {"data flow", "data store", "external entity"},
		"flowchart":                   {"flow", "process", "decision", "branch"},
		"architecture diagram":        {"architecture", "system design", "components", "layers"},
		"network diagram":             {"network", "topology", "connectivity"},
		"git workflow":                {"git", "branch", "merge", "commit"},
	},
	CategoryPrompts: map[string]promptSpec{
		"use case diagram": {
			Prompt: "Describe this use case diagram. Identify every actor, every " +
				"use case oval, and the system boundary. Report include and extend " +
				"relationships only where their stereotype labels are visible.",
			FocusAreas:      []string{"actors", "use cases", "system boundary", "associations"},
			DisallowedTerms: []string{"method signature", "private", "protected", "public"},
		},
		"c4 model diagram": {
			Prompt: "Describe this C4 model diagram. State the C4 level " +
				"(Context, Container, or Component), then enumerate each element " +
				"with its name, technology tag, and relationships.",
			FocusAreas: []string{"c4 level", "elements", "technology tags", "relationships"},
		},
		"entity relationship diagram": {
			Prompt: "Describe this entity relationship diagram. Enumerate each " +
				"entity with its attributes, and each relationship with its " +
				"cardinality as drawn.",
			FocusAreas: []string{"entities", "attributes", "relationships", "cardinality"},
		},
		"class diagram": {
			Prompt: "Describe this class diagram. Enumerate each class with its " +
				"attributes and operations, and describe inheritance, composition, " +
				"and association relationships as drawn.",
			FocusAreas: []string{"classes", "attributes", "operations", "relationships"},
		},
		"sequence diagram": {
			Prompt: "Describe this sequence diagram. List the lifelines in order, " +
				"then walk the message flow top to bottom, noting synchronous and " +
				"asynchronous messages and activation boxes.",
			FocusAreas: []string{"lifelines", "message flow", "activations", "ordering"},
		},
		"state diagram": {
			Prompt: "Describe this state diagram. Enumerate the states, the " +
				"initial and final markers, and every transition with its trigger " +
				"label as written.",
			FocusAreas: []string{"states", "transitions", "triggers", "initial and final states"},
		},
		"deployment diagram": {
			Prompt: "Describe this deployment diagram. Enumerate the nodes, the " +
				"artifacts deployed on each, and the communication paths between them.",
			FocusAreas: []string{"nodes", "artifacts", "communication paths"},
		},
		"data flow diagram": {
			Prompt: "Describe this data flow diagram. Enumerate the processes with " +
				"their numbers, the data stores, the external entities, and each " +
				"labeled flow between them.",
			FocusAreas: []string{"processes", "data stores", "external entities", "flows"},
		},
		"flowchart": {
			Prompt: "Describe this flowchart. Walk the flow from its start node, " +
				"describing each process and decision step and the condition on " +
				"every branch.",
			FocusAreas: []string{"start and end", "process steps", "decisions", "branches"},
		},
		"architecture diagram": {
			Prompt: "Describe this architecture diagram at a conceptual level. " +
				"Enumerate the components, layers, and external services and how " +
				"they connect. Do not invent implementation detail that is not drawn.",
			FocusAreas:      []string{"components", "layers", "external services", "connections"},
			DisallowedTerms: []string{"method signature", "private", "protected"},
		},
		"network diagram": {
			Prompt: "Describe this network diagram. Enumerate the devices and " +
				"segments, their addresses or labels as written, and the topology " +
				"connecting them.",
			FocusAreas: []string{"devices", "segments", "topology", "labels"},
		},
		"git workflow": {
			Prompt: "Describe this git workflow diagram. Enumerate the branches, " +
				"the commit sequence along each, and every merge or rebase point.",
			FocusAreas: []string{"branches", "commits", "merge points"},
		},
	},
}
