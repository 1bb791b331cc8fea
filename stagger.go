package cadence

import "time"

// StaggerGroup sequences sibling tasks: child i starts after
// BaseDelay + i*ChildOffset. Children are kept in insertion order for the
// group's lifetime and run independently once armed.
type StaggerGroup struct {
	Name        string
	BaseDelay   time.Duration
	ChildOffset time.Duration

	children []*Task
	armed    bool
	runs     int
}

// NewStaggerGroup creates an empty group.
func NewStaggerGroup(name string, baseDelay, childOffset time.Duration) *StaggerGroup {
	return &StaggerGroup{Name: name, BaseDelay: baseDelay, ChildOffset: childOffset}
}

// Add appends task and assigns its effective delay. It returns the task for
// chaining.
func (g *StaggerGroup) Add(task *Task) *Task {
	task.SetDelay(g.DelayFor(len(g.children)))
	g.children = append(g.children, task)
	return task
}

// DelayFor returns the effective start delay of the child at index.
func (g *StaggerGroup) DelayFor(index int) time.Duration {
	return g.BaseDelay + time.Duration(index)*g.ChildOffset
}

// Children returns the group's tasks in insertion order. The returned slice
// MUST NOT be mutated.
func (g *StaggerGroup) Children() []*Task {
	return g.children
}

// Len returns the number of children.
func (g *StaggerGroup) Len() int {
	return len(g.children)
}

// Start arms every child at once. Re-arming resets all children to their
// pre-delay state first so no child resumes from a previous run's progress.
func (g *StaggerGroup) Start() {
	for _, c := range g.children {
		c.Reset()
	}
	for _, c := range g.children {
		c.Start()
	}
	g.armed = true
	g.runs++
}

// Reset returns every child to its idle state without arming.
func (g *StaggerGroup) Reset() {
	for _, c := range g.children {
		c.Reset()
	}
	g.armed = false
}

// Armed reports whether Start has been called since the last Reset.
func (g *StaggerGroup) Armed() bool {
	return g.armed
}

// Runs returns how many times the group has been started.
func (g *StaggerGroup) Runs() int {
	return g.runs
}

// Update advances every child by dt.
func (g *StaggerGroup) Update(dt time.Duration) {
	for _, c := range g.children {
		c.Update(dt)
	}
}

// Done reports whether every child has completed. An empty group is done.
func (g *StaggerGroup) Done() bool {
	for _, c := range g.children {
		if !c.IsComplete() && !c.Stopped() {
			return false
		}
	}
	return true
}
