// Command quantix-wallet manages post-quantum Quantix wallets: key
// generation, recovery phrases, balances and payments.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/quantixorg/libquantix-go/alias"
	"github.com/quantixorg/libquantix-go/config"
	"github.com/quantixorg/libquantix-go/keystore"
	"github.com/quantixorg/libquantix-go/network"
	"github.com/quantixorg/libquantix-go/pqc"
	"github.com/quantixorg/libquantix-go/tx"
	"github.com/quantixorg/libquantix-go/wallet"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2

	keystoreFile = "wallets.db"

	// EnvPassword supplies the keystore password when -password is absent.
	EnvPassword = "QUANTIX_PASSWORD"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], environMap(os.Environ()), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func environMap(kv []string) map[string]string {
	m := make(map[string]string, len(kv))
	for _, e := range kv {
		if k, v, ok := strings.Cut(e, "="); ok {
			m[k] = v
		}
	}
	return m
}

// app carries what every subcommand needs.
type app struct {
	cfg     config.Config
	environ map[string]string
	log     *slog.Logger
	stdout  io.Writer
	stderr  io.Writer
}

type command struct {
	name    string
	usage   string
	needCfg bool
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"keygen", "generate a key pair, write its export file and store it", true, cmdKeygen},
	{"address", "print the address of an export file", true, cmdAddress},
	{"mnemonic", "print a new recovery phrase", false, cmdMnemonic},
	{"recover", "restore a key pair from a recovery phrase and store it", true, cmdRecover},
	{"balance", "print the spendable balance of an address", true, cmdBalance},
	{"send", "pay an address or alias from a stored wallet", true, cmdSend},
	{"verify", "verify the signatures of a wire-encoded transaction", true, cmdVerify},
	{"list", "list stored wallets", true, cmdList},
}

func usage(w io.Writer, global *flag.FlagSet) {
	_, _ = fmt.Fprintln(w, "usage: quantix-wallet [global flags] <command> [flags]")
	_, _ = fmt.Fprintln(w, "\ncommands:")
	for _, c := range commands {
		_, _ = fmt.Fprintf(w, "  %-9s %s\n", c.name, c.usage)
	}
	_, _ = fmt.Fprintln(w, "\nglobal flags:")
	global.SetOutput(w)
	global.PrintDefaults()
}

func run(ctx context.Context, args []string, environ map[string]string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("quantix-wallet", flag.ContinueOnError)
	global.SetOutput(stderr)
	dataDir := global.String("datadir", config.DefaultDataDir(), "wallet data directory")
	networkName := global.String("network", "", "network name (mainnet/testnet/regtest)")
	ledgerURL := global.String("ledger", "", "ledger node JSON-RPC URL")
	addrScheme := global.String("address-scheme", "", "address scheme (pubkey-hex/hash160-0x)")
	logLevel := global.String("log-level", "", "log level: debug|info|warn|error")
	global.Usage = func() { usage(stderr, global) }
	if err := global.Parse(args); err != nil {
		return exitUsage
	}
	if global.NArg() == 0 {
		usage(stderr, global)
		return exitUsage
	}

	name, rest := global.Arg(0), global.Args()[1:]
	var cmd *command
	for i := range commands {
		if commands[i].name == name {
			cmd = &commands[i]
			break
		}
	}
	if cmd == nil {
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", name)
		usage(stderr, global)
		return exitUsage
	}

	a := &app{environ: environ, stdout: stdout, stderr: stderr, log: slog.New(slog.DiscardHandler)}
	if cmd.needCfg {
		cfg, err := config.Load(*dataDir, environ, func(c *config.Config) {
			setIf(&c.Network, *networkName)
			setIf(&c.LedgerURL, *ledgerURL)
			setIf(&c.AddressScheme, *addrScheme)
			setIf(&c.LogLevel, *logLevel)
		})
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "invalid config: %v\n", err)
			return exitUsage
		}
		logger, closer, err := config.NewLogger(cfg, stderr)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "logger: %v\n", err)
			return exitUsage
		}
		defer closer.Close()
		a.cfg, a.log = cfg, logger
	}

	if err := cmd.run(ctx, a, rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitUsage
		}
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return exitError
	}
	return exitOK
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func newFlagSet(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) keyManager() (*wallet.KeyManager, error) {
	return wallet.NewKeyManagerByName(pqc.Dilithium2(), a.cfg.AddressScheme)
}

func (a *app) openStore() (*keystore.BoltStore, error) {
	return keystore.OpenBoltStore(filepath.Join(a.cfg.DataDir, keystoreFile))
}

func (a *app) ledger() (*network.RPCClient, error) {
	rpcCfg, err := a.cfg.LedgerRPC()
	if err != nil {
		return nil, err
	}
	return network.NewRPCClient(*rpcCfg), nil
}

func (a *app) password(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return a.environ[EnvPassword]
}

// storeKeyPair exports kp, encrypting it when password is set, and adds
// it to the keystore under its address.
func (a *app) storeKeyPair(km *wallet.KeyManager, kp *wallet.KeyPair, label, password string) (wallet.Address, []byte, error) {
	addr, err := km.DeriveAddress(kp.PublicKey)
	if err != nil {
		return "", nil, err
	}
	export, err := wallet.ExportKeyPair(km.Scheme(), kp)
	if err != nil {
		return "", nil, err
	}

	payload := export
	if password != "" {
		payload, err = wallet.EncryptExport(export, password)
		if err != nil {
			return "", nil, err
		}
	}

	store, err := a.openStore()
	if err != nil {
		return "", nil, err
	}
	defer store.Close()

	err = store.Put(&keystore.Record{
		Address:       string(addr),
		Scheme:        km.Scheme().Name(),
		AddressScheme: km.AddressScheme().Name(),
		Label:         label,
		Encrypted:     password != "",
		Payload:       payload,
		CreatedAt:     time.Now().Unix(),
	})
	if err != nil {
		return "", nil, err
	}
	a.log.Info("wallet stored", "address", addr, "encrypted", password != "")
	return addr, export, nil
}

func cmdKeygen(_ context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "keygen")
	password := fs.String("password", "", "encrypt the stored key with this password (or "+EnvPassword+")")
	label := fs.String("label", "", "label for the stored wallet")
	outDir := fs.String("out", ".", "directory for the export file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	km, err := a.keyManager()
	if err != nil {
		return err
	}
	kp, err := km.GenerateKeyPair()
	if err != nil {
		return err
	}
	defer kp.Wipe()

	addr, export, err := a.storeKeyPair(km, kp, *label, a.password(*password))
	if err != nil {
		return err
	}

	path := filepath.Join(*outDir, wallet.ExportFileName(addr))
	if err := os.WriteFile(path, export, 0600); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	_, _ = fmt.Fprintf(a.stdout, "address: %s\nexport: %s\n", addr, path)
	return nil
}

func cmdAddress(_ context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "address")
	file := fs.String("file", "", "wallet export file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("-file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	kp, scheme, err := wallet.ImportKeyPair(data)
	if err != nil {
		return err
	}
	defer kp.Wipe()

	km, err := wallet.NewKeyManagerByName(scheme, a.cfg.AddressScheme)
	if err != nil {
		return err
	}
	addr, err := km.DeriveAddress(kp.PublicKey)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(a.stdout, addr)
	return nil
}

func cmdMnemonic(_ context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "mnemonic")
	words := fs.Int("words", 24, "phrase length: 12 or 24")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bits := wallet.Mnemonic24Words
	switch *words {
	case 24:
	case 12:
		bits = wallet.Mnemonic12Words
	default:
		return fmt.Errorf("%w: -words must be 12 or 24", wallet.ErrInvalidEntropy)
	}
	m, err := wallet.GenerateMnemonic(bits)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(a.stdout, m)
	return nil
}

func cmdRecover(_ context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "recover")
	phrase := fs.String("mnemonic", "", "recovery phrase")
	passphrase := fs.String("passphrase", "", "optional BIP39 passphrase")
	password := fs.String("password", "", "encrypt the stored key with this password (or "+EnvPassword+")")
	label := fs.String("label", "recovered", "label for the stored wallet")
	if err := fs.Parse(args); err != nil {
		return err
	}

	km, err := a.keyManager()
	if err != nil {
		return err
	}
	kp, err := wallet.KeyPairFromMnemonic(km.Scheme(), strings.TrimSpace(*phrase), *passphrase)
	if err != nil {
		return err
	}
	defer kp.Wipe()

	addr, _, err := a.storeKeyPair(km, kp, *label, a.password(*password))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.stdout, "address: %s\n", addr)
	return nil
}

func cmdBalance(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "balance")
	address := fs.String("address", "", "address to query")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *address == "" {
		return errors.New("-address is required")
	}

	ledger, err := a.ledger()
	if err != nil {
		return err
	}
	balance, err := network.Balance(ctx, ledger, *address)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.stdout, "%d\n", balance)
	return nil
}

// loadKeyPair reads and, when needed, decrypts the stored wallet for address.
func (a *app) loadKeyPair(address, password string) (*wallet.KeyPair, pqc.Scheme, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	defer store.Close()

	rec, err := store.Get(address)
	if err != nil {
		return nil, nil, err
	}
	payload := rec.Payload
	if rec.Encrypted {
		if password == "" {
			return nil, nil, fmt.Errorf("wallet %s is encrypted: -password or %s required", address, EnvPassword)
		}
		payload, err = wallet.DecryptExport(rec.Payload, password)
		if err != nil {
			return nil, nil, err
		}
	}
	return wallet.ImportKeyPair(payload)
}

func cmdSend(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "send")
	from := fs.String("from", "", "stored wallet address to pay from")
	to := fs.String("to", "", "recipient address or name@domain alias")
	amount := fs.Uint64("amount", 0, "amount to send")
	password := fs.String("password", "", "keystore password (or "+EnvPassword+")")
	dnssec := fs.String("dnssec", "", "resolve aliases through this DNSSEC-validating resolver (host:port)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *from == "" || *to == "" {
		return errors.New("-from and -to are required")
	}

	var resolver alias.DNSResolver = alias.DefaultDNSResolver
	if *dnssec != "" {
		resolver = alias.NewDNSSECResolver(*dnssec)
	}
	recipient, err := alias.ResolveRecipient(*to, resolver)
	if err != nil {
		return err
	}
	if recipient != *to {
		a.log.Info("alias resolved", "alias", *to, "address", recipient)
	}

	kp, scheme, err := a.loadKeyPair(*from, a.password(*password))
	if err != nil {
		return err
	}
	defer kp.Wipe()

	km, err := wallet.NewKeyManagerByName(scheme, a.cfg.AddressScheme)
	if err != nil {
		return err
	}
	ledger, err := a.ledger()
	if err != nil {
		return err
	}
	sender := &wallet.Sender{Ledger: ledger, Addresses: km.AddressScheme(), Scheme: scheme, Logger: a.log}
	_, txid, err := sender.Send(ctx, kp, wallet.Address(*from), recipient, *amount)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(a.stdout, txid)
	return nil
}

func cmdVerify(_ context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "verify")
	file := fs.String("tx", "", "wire-encoded transaction file")
	owner := fs.String("owner", "", "pubkey-hex address owning every input")
	exportFile := fs.String("wallet", "", "export file whose public key owns every input")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("-tx is required")
	}

	scheme := pqc.Dilithium2()
	var pubKey []byte
	switch {
	case *owner != "":
		pk, err := wallet.PublicKeyHexScheme{PublicKeySize: scheme.PublicKeySize()}.PublicKeyFromAddress(*owner)
		if err != nil {
			return err
		}
		pubKey = pk
	case *exportFile != "":
		data, err := os.ReadFile(*exportFile)
		if err != nil {
			return err
		}
		kp, s, err := wallet.ImportKeyPair(data)
		if err != nil {
			return err
		}
		kp.Wipe()
		pubKey, scheme = kp.PublicKey, s
	default:
		return errors.New("-owner or -wallet is required")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	t, err := tx.DecodeJSON(raw)
	if err != nil {
		return err
	}
	err = tx.VerifyTransaction(scheme, t, func(tx.TxInput) ([]byte, error) { return pubKey, nil })
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.stdout, "valid: %s (%d inputs)\n", t.ID, len(t.Inputs))
	return nil
}

func cmdList(_ context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List()
	if err != nil {
		return err
	}
	for _, r := range records {
		_, _ = fmt.Fprintf(a.stdout, "%s\t%s\t%s\tencrypted=%v\t%s\n",
			r.Address, r.AddressScheme, r.Label, r.Encrypted, time.Unix(r.CreatedAt, 0).UTC().Format(time.RFC3339))
	}
	return nil
}
