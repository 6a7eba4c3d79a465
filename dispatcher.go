package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/elijahnyp/home_registry/state"
	. "github.com/elijahnyp/home_registry/util"
)

var (
	ErrInvalidNumber  = errors.New("invalid number")
	ErrInvalidCommand = errors.New("invalid command")
)

// Sink is told about every successful mutation.
type Sink interface {
	DeviceChanged(dev state.DeviceState)
	DeviceRemoved(name string)
}

type Command int

const (
	CmdShow Command = iota + 1
	CmdTurnOn
	CmdTurnOff
	CmdAdjust
	CmdAdd
	CmdRemove
	CmdExit
)

var commands = []struct {
	cmd   Command
	name  string
	label string
}{
	{CmdShow, "show", "Show All Devices"},
	{CmdTurnOn, "turn_on", "Turn ON Device"},
	{CmdTurnOff, "turn_off", "Turn OFF Device"},
	{CmdAdjust, "adjust", "Adjust Device"},
	{CmdAdd, "add", "Add a Device"},
	{CmdRemove, "remove", "Remove a Device"},
	{CmdExit, "exit", "Exit"},
}

// ParseCommand accepts a menu number or a command name such as "turn_on" or
// "Turn On".
func ParseCommand(input string) (Command, error) {
	in := strings.ToLower(strings.TrimSpace(input))
	in = strings.NewReplacer(" ", "_", "-", "_").Replace(in)
	for _, c := range commands {
		if in == c.name || in == strconv.Itoa(int(c.cmd)) {
			return c.cmd, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCommand, input)
}

func (c Command) String() string {
	for _, entry := range commands {
		if entry.cmd == c {
			return entry.name
		}
	}
	return "unknown"
}

type Option func(*Dispatcher)

func WithSink(sink Sink) Option {
	return func(d *Dispatcher) { d.sink = sink }
}

// Dispatcher runs the interactive menu against a registry. All of its state is
// the input, the output and the registry it was given.
type Dispatcher struct {
	in   *bufio.Scanner
	out  io.Writer
	reg  *state.Registry
	sink Sink

	heading lipgloss.Style
	warn    lipgloss.Style
}

func NewDispatcher(in io.Reader, out io.Writer, reg *state.Registry, opts ...Option) *Dispatcher {
	renderer := lipgloss.NewRenderer(out)
	d := &Dispatcher{
		in:      bufio.NewScanner(in),
		out:     out,
		reg:     reg,
		heading: renderer.NewStyle().Bold(true),
		warn:    renderer.NewStyle().Foreground(lipgloss.Color("9")),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run loops until the exit command or the end of input. Only a failing input
// stream is reported as an error.
func (d *Dispatcher) Run() error {
	for {
		d.printMenu()
		line, err := d.readLine("Please select: ")
		if err != nil {
			return d.inputDone(err)
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			d.report(err)
			continue
		}
		Logger.Debug().Str("command", cmd.String()).Msg("dispatch")
		if cmd == CmdExit {
			d.println("Goodbye!")
			return nil
		}
		if err := d.Execute(cmd); err != nil {
			if errors.Is(err, io.EOF) {
				return d.inputDone(err)
			}
			d.report(err)
		}
	}
}

// Execute runs a single non-exit command, prompting for what it needs.
func (d *Dispatcher) Execute(cmd Command) error {
	switch cmd {
	case CmdShow:
		d.showAll()
		return nil
	case CmdTurnOn:
		return d.turnOn()
	case CmdTurnOff:
		return d.turnOff()
	case CmdAdjust:
		return d.adjust()
	case CmdAdd:
		return d.add()
	case CmdRemove:
		return d.remove()
	}
	return fmt.Errorf("%w: %v", ErrInvalidCommand, cmd)
}

func (d *Dispatcher) printMenu() {
	d.println("")
	d.println(d.heading.Render("Choose an option:"))
	for _, c := range commands {
		d.println(fmt.Sprintf("%d. %s", c.cmd, c.label))
	}
}

func (d *Dispatcher) showAll() {
	d.println("")
	d.println(d.heading.Render("*** Showing All Devices ***"))
	for _, line := range d.reg.List() {
		d.println(line)
	}
}

func (d *Dispatcher) promptDevice(action string) (state.Device, error) {
	name, err := d.readLine("Which device do you want to " + action + ": ")
	if err != nil {
		return nil, err
	}
	dev, ok := d.reg.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", state.ErrNotFound, name)
	}
	return dev, nil
}

func (d *Dispatcher) turnOn() error {
	dev, err := d.promptDevice("turn ON")
	if err != nil {
		return err
	}
	d.powerOn(dev)
	return nil
}

func (d *Dispatcher) powerOn(dev state.Device) {
	if !dev.TurnOn() {
		d.println(dev.Name() + " is already ON.")
		return
	}
	d.println(dev.Name() + " is now ON.")
	d.changed(dev)
}

func (d *Dispatcher) turnOff() error {
	dev, err := d.promptDevice("turn OFF")
	if err != nil {
		return err
	}
	if !dev.TurnOff() {
		d.println(dev.Name() + " is already OFF.")
		return nil
	}
	d.println(dev.Name() + " is now OFF.")
	d.changed(dev)
	return nil
}

func (d *Dispatcher) adjust() error {
	dev, err := d.promptDevice("adjust")
	if err != nil {
		return err
	}

	if !dev.IsOn() {
		answer, err := d.readLine(dev.Name() + " is OFF. Turn it ON? (y/n): ")
		if err != nil {
			return err
		}
		if !affirmative(answer) {
			d.println("Adjustment cancelled.")
			return nil
		}
		d.powerOn(dev)
	}

	kind := dev.Kind()
	lo, hi := kind.Bounds()
	input, err := d.readLine(fmt.Sprintf("Enter %s level [%d-%d]: ", kind.SettingName(), lo, hi))
	if err != nil {
		return err
	}
	level, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidNumber, input)
	}
	if err := dev.Adjust(level); err != nil {
		return err
	}
	d.println(fmt.Sprintf("%s %s set to %d.", dev.Name(), kind.SettingName(), dev.Setting()))
	d.changed(dev)
	return nil
}

func (d *Dispatcher) add() error {
	kind, err := d.readLine("Enter device type (Light/Fan): ")
	if err != nil {
		return err
	}
	name, err := d.readLine("Enter device name: ")
	if err != nil {
		return err
	}
	if err := d.reg.Add(kind, name); err != nil {
		return err
	}
	dev, _ := d.reg.Find(name)
	d.println(fmt.Sprintf("%s (%s) has been added.", dev.Name(), dev.Kind()))
	d.changed(dev)
	return nil
}

func (d *Dispatcher) remove() error {
	name, err := d.readLine("Enter the name of the device to remove: ")
	if err != nil {
		return err
	}
	dev, ok := d.reg.Find(name)
	if !ok {
		return fmt.Errorf("%w: %s", state.ErrNotFound, name)
	}
	if err := d.reg.Remove(name); err != nil {
		return err
	}
	d.println(dev.Name() + " has been removed.")
	if d.sink != nil {
		d.sink.DeviceRemoved(dev.Name())
	}
	return nil
}

func (d *Dispatcher) changed(dev state.Device) {
	if d.sink != nil {
		d.sink.DeviceChanged(dev.Snapshot())
	}
}

// Message converts a dispatcher or registry error into the line shown to the
// user.
func Message(err error) string {
	var rerr *state.RangeError
	switch {
	case errors.As(err, &rerr):
		return fmt.Sprintf("Invalid %s level. Enter a value between %d and %d.", rerr.Kind.SettingName(), rerr.Min, rerr.Max)
	case errors.Is(err, state.ErrNotFound):
		return "Device not found."
	case errors.Is(err, state.ErrDuplicateName):
		return "Device already exists."
	case errors.Is(err, state.ErrInvalidKind):
		return "Invalid device type."
	case errors.Is(err, state.ErrInvalidName):
		return "Invalid device name."
	case errors.Is(err, ErrInvalidNumber):
		return "Invalid input. Please enter a number."
	case errors.Is(err, ErrInvalidCommand):
		return "Invalid input."
	}
	return "Error: " + err.Error()
}

func (d *Dispatcher) report(err error) {
	Logger.Debug().Err(err).Msg("command failed")
	d.println(d.warn.Render(Message(err)))
}

func (d *Dispatcher) inputDone(err error) error {
	if errors.Is(err, io.EOF) {
		Logger.Info().Msg("input closed, leaving")
		d.println("")
		return nil
	}
	Logger.Error().Msgf("reading input: %v", err)
	return fmt.Errorf("read input: %w", err)
}

// readLine prints prompt and returns the next trimmed line, or io.EOF once the
// input is exhausted.
func (d *Dispatcher) readLine(prompt string) (string, error) {
	fmt.Fprint(d.out, prompt)
	if !d.in.Scan() {
		if err := d.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(d.in.Text()), nil
}

func (d *Dispatcher) println(line string) {
	fmt.Fprintln(d.out, line)
}

func affirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
