package periodic

// defaultElements seeds an empty or reset table. Ids are assigned at seed
// time so every reset produces fresh ones.
var defaultElements = []Element{
	{Position: 1, Name: "Hydrogen", Weight: 1.0079, Symbol: "H"},
	{Position: 2, Name: "Helium", Weight: 4.0026, Symbol: "He"},
	{Position: 3, Name: "Lithium", Weight: 6.941, Symbol: "Li"},
	{Position: 4, Name: "Beryllium", Weight: 9.0122, Symbol: "Be"},
	{Position: 5, Name: "Boron", Weight: 10.811, Symbol: "B"},
	{Position: 6, Name: "Carbon", Weight: 12.0107, Symbol: "C"},
	{Position: 7, Name: "Nitrogen", Weight: 14.0067, Symbol: "N"},
	{Position: 8, Name: "Oxygen", Weight: 15.9994, Symbol: "O"},
	{Position: 9, Name: "Fluorine", Weight: 18.9984, Symbol: "F"},
	{Position: 10, Name: "Neon", Weight: 20.1797, Symbol: "Ne"},
}

// DefaultElements returns the built-in dataset without ids.
func DefaultElements() []Element {
	return cloneElements(defaultElements)
}

// seedElements returns the default dataset with a fresh id on every record,
// sorted.
func seedElements(ids IDGenerator) []Element {
	out := DefaultElements()
	for i := range out {
		out[i].ID = ids.NewID()
	}
	return sortElements(out)
}
