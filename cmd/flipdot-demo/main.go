package main

import (
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/flipdot"
	"github.com/BeatGlow/flipdot/draw"
	"github.com/BeatGlow/flipdot/pixel"
)

func main() {
	pflag.String("port", flipdot.VirtualPort, "Sign bus serial port, or \"virtual\" for an in-memory sign")
	pflag.Uint8("address", 3, "Sign address")
	pflag.String("type", flipdot.Max3000Side90x7.String(), "Sign type ("+signTypeNames()+")")
	pflag.Int("baud", int(flipdot.DefaultSerialConfig.Baud/physic.Hertz), "Sign bus baud rate")
	pflag.Bool("rs485", false, "Enable kernel RS-485 mode of the serial port")
	pflag.String("tx-enable", "", "Transceiver driver enable GPIO pin (default: none)")
	pflag.String("log-file", "", "Log to a rotated file instead of stderr")
	pflag.Bool("debug", false, "Enable debug logging")
	pflag.Duration("delay", time.Second, "Delay between pages")
	pflag.Parse()

	v := viper.New()
	v.SetEnvPrefix("flipdot")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		fatal(err)
	}

	if name := v.GetString("log-file"); name != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   name,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
	}
	if v.GetBool("debug") {
		flipdot.SetDebug(true)
	}

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	if err := run(v, os.Stdout); err != nil {
		fatal(err)
	}
}

// run opens the sign and shows the demo pages. The sign is closed on return.
func run(v *viper.Viper, w io.Writer) error {
	signType, err := flipdot.ParseSignType(v.GetString("type"))
	if err != nil {
		return err
	}
	address, err := signAddress(v.GetUint("address"))
	if err != nil {
		return err
	}

	config := &flipdot.Config{
		Port:    v.GetString("port"),
		Address: address,
		Type:    signType,
		Serial: &flipdot.SerialConfig{
			Baud:  physic.Frequency(v.GetInt("baud")) * physic.Hertz,
			RS485: v.GetBool("rs485"),
		},
	}
	if name := v.GetString("tx-enable"); name != "" {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return fmt.Errorf("no GPIO pin named %q", name)
		}
		config.Serial.TxEnable = pin
	}

	output, err := flipdot.Open(config)
	if err != nil {
		return err
	}
	defer output.Close()
	fmt.Fprintf(w, "using sign: %s\n", output)

	delay := v.GetDuration("delay")
	flush := func(what string) error {
		fmt.Fprintf(w, "showing %s\n", what)
		if err := output.Flush(); err != nil {
			return err
		}
		time.Sleep(delay)
		return nil
	}

	// Shapes
	draw.Circle(output, image.Pt(5, 3), 3, pixel.On)
	draw.FilledTriangle(output, image.Pt(11, 1), image.Pt(15, 5), image.Pt(19, 1), pixel.On)
	if err = flush("shapes"); err != nil {
		return err
	}

	// Keep the shapes, add text
	draw.Text(output, image.Pt(24, 0), "Hello, world!", draw.Font5x7, pixel.On)
	if err = flush("text"); err != nil {
		return err
	}

	output.Clear(pixel.On)
	if err = flush("all dots on"); err != nil {
		return err
	}

	output.Clear(pixel.Off)
	return flush("all dots off")
}

// signAddress checks that v fits a sign address.
func signAddress(v uint) (flipdot.Address, error) {
	if v == 0 || v > math.MaxUint8 {
		return 0, fmt.Errorf("invalid sign address %d, expected 1-%d", v, math.MaxUint8)
	}
	return flipdot.Address(v), nil
}

func signTypeNames() string {
	var names []string
	for _, t := range flipdot.SignTypes() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
