package vector

// Runnable is the interface implemented by scheduler loops.
// The Run method contains the loop's logic and is called once per due tick.
type Runnable interface {
	Run()
}

// RunnableFunc adapts a plain function to Runnable.
type RunnableFunc func()

// Run calls f.
func (f RunnableFunc) Run() {
	f()
}
