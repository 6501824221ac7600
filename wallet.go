package sui

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	// ClientConfigFilename is the client config file inside the config dir.
	ClientConfigFilename = "client.yaml"
	// KeystoreFilename is the keystore file inside the config dir.
	KeystoreFilename = "sui.keystore"
	configDirName    = ".sui/sui_config"
)

// minWalletAddresses is how many key identities wallet initialization
// guarantees, so write examples always have a distinct recipient.
const minWalletAddresses = 2

// walletLogger logs wallet initialization events. Replace with
// [SetWalletLogger] to integrate with an application logger.
var walletLogger = zerolog.Nop()

// SetWalletLogger installs a logger for wallet initialization events.
func SetWalletLogger(logger zerolog.Logger) {
	walletLogger = logger
}

// ClientEnv is one network environment entry of the client config.
type ClientEnv struct {
	Alias  string `yaml:"alias"`
	Rpc    string `yaml:"rpc"`
	Faucet string `yaml:"faucet,omitempty"`
}

// ClientConfig is the on-disk wallet configuration: the keystore
// location, the known network environments, and the active selections.
type ClientConfig struct {
	Keystore struct {
		File string `yaml:"File"`
	} `yaml:"keystore"`
	Envs          []ClientEnv `yaml:"envs"`
	ActiveEnv     string      `yaml:"active_env,omitempty"`
	ActiveAddress string      `yaml:"active_address,omitempty"`
}

// SuiConfigDir returns the well-known configuration directory,
// creating it if absent.
func SuiConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "resolve home directory"), ErrConfig)
	}
	dir := filepath.Join(home, configDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", errors.Mark(errors.Wrapf(err, "create config directory %s", dir), ErrConfig)
	}
	return dir, nil
}

func envFromNetworkConfig(nc NetworkConfig) ClientEnv {
	return ClientEnv{Alias: nc.Name, Rpc: nc.NodeUrl, Faucet: nc.FaucetUrl}
}

// WalletContext is the local wallet: its config, its keystore, and where
// they live on disk.
type WalletContext struct {
	Config   *ClientConfig
	Keystore *FileBasedKeystore

	configPath string
}

// RetrieveWallet loads the wallet from the well-known paths, creating
// keystore and client config with create-if-absent semantics on first
// run. It guarantees at least two key identities and an active address,
// and is safe to call repeatedly — a second call changes nothing.
//
// Concurrent processes initializing the same directory are not
// coordinated; there is no file locking.
func RetrieveWallet() (*WalletContext, error) {
	configDir, err := SuiConfigDir()
	if err != nil {
		return nil, err
	}
	return RetrieveWalletAt(configDir)
}

// RetrieveWalletAt is [RetrieveWallet] against an explicit directory.
func RetrieveWalletAt(configDir string) (*WalletContext, error) {
	keystorePath := filepath.Join(configDir, KeystoreFilename)
	configPath := filepath.Join(configDir, ClientConfigFilename)

	keystore, err := NewFileBasedKeystore(keystorePath)
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(keystorePath); errors.Is(statErr, os.ErrNotExist) {
		if err := keystore.Save(); err != nil {
			return nil, err
		}
		walletLogger.Info().Str("path", keystorePath).Msg("created keystore file")
	}

	config, created, err := loadOrCreateClientConfig(configPath, keystorePath)
	if err != nil {
		return nil, err
	}
	if created {
		walletLogger.Info().Str("path", configPath).Msg("client config file is stored")
	}

	for len(keystore.Addresses()) < minWalletAddresses {
		if _, err := keystore.GenerateAndAddKey(); err != nil {
			return nil, err
		}
	}
	if err := keystore.Save(); err != nil {
		return nil, err
	}

	config.ActiveAddress = keystore.Addresses()[0].String()
	if err := saveClientConfig(configPath, config); err != nil {
		return nil, err
	}

	return &WalletContext{
		Config:     config,
		Keystore:   keystore,
		configPath: configPath,
	}, nil
}

func loadOrCreateClientConfig(configPath string, keystorePath string) (*ClientConfig, bool, error) {
	raw, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		config := &ClientConfig{
			Envs: []ClientEnv{
				envFromNetworkConfig(TestnetConfig),
				envFromNetworkConfig(DevnetConfig),
				envFromNetworkConfig(LocalnetConfig),
			},
		}
		config.Keystore.File = keystorePath
		config.ActiveEnv = config.Envs[0].Alias
		if err := saveClientConfig(configPath, config); err != nil {
			return nil, false, err
		}
		return config, true, nil
	}
	if err != nil {
		return nil, false, errors.Mark(errors.Wrapf(err, "read client config %s", configPath), ErrConfig)
	}
	config := &ClientConfig{}
	if err := yaml.Unmarshal(raw, config); err != nil {
		return nil, false, errors.Mark(errors.Wrapf(err, "parse client config %s", configPath), ErrConfig)
	}
	if config.ActiveEnv == "" && len(config.Envs) > 0 {
		config.ActiveEnv = config.Envs[0].Alias
	}
	return config, false, nil
}

func saveClientConfig(configPath string, config *ClientConfig) error {
	raw, err := yaml.Marshal(config)
	if err != nil {
		return errors.Mark(err, ErrConfig)
	}
	if err := os.WriteFile(configPath, raw, 0o600); err != nil {
		return errors.Mark(errors.Wrapf(err, "write client config %s", configPath), ErrConfig)
	}
	return nil
}

// ActiveAddress returns the wallet's active address.
func (w *WalletContext) ActiveAddress() (AccountAddress, error) {
	if w.Config.ActiveAddress == "" {
		return AccountZero, errors.Wrap(ErrConfig, "wallet has no active address")
	}
	return ParseAccountAddress(w.Config.ActiveAddress)
}

// Addresses returns all addresses known to the wallet's keystore.
func (w *WalletContext) Addresses() []AccountAddress {
	return w.Keystore.Addresses()
}

// ActiveEnv returns the network config of the wallet's active
// environment.
func (w *WalletContext) ActiveEnv() (NetworkConfig, error) {
	for _, env := range w.Config.Envs {
		if env.Alias == w.Config.ActiveEnv {
			return NetworkConfig{Name: env.Alias, NodeUrl: env.Rpc, FaucetUrl: env.Faucet}, nil
		}
	}
	return NetworkConfig{}, errors.Wrapf(ErrConfig, "active env %q is not configured", w.Config.ActiveEnv)
}

// SetupForRead initializes the wallet and a client for its active
// environment, returning the client and the active address. The sender
// side of every example pipeline.
func SetupForRead(ctx context.Context) (*Client, AccountAddress, error) {
	wallet, err := RetrieveWallet()
	if err != nil {
		return nil, AccountZero, err
	}
	env, err := wallet.ActiveEnv()
	if err != nil {
		return nil, AccountZero, err
	}
	client, err := NewClient(env)
	if err != nil {
		return nil, AccountZero, err
	}
	activeAddress, err := wallet.ActiveAddress()
	if err != nil {
		return nil, AccountZero, err
	}
	return client, activeAddress, nil
}

// SetupForWrite is [SetupForRead] plus a funds check with faucet
// fallback, and additionally returns a recipient address distinct from
// the sender.
func SetupForWrite(ctx context.Context) (*Client, AccountAddress, AccountAddress, error) {
	client, sender, err := SetupForRead(ctx)
	if err != nil {
		return nil, AccountZero, AccountZero, err
	}
	if _, err := client.FetchCoinOrRequestFunds(ctx, sender, SuiCoinType, DefaultFundThreshold); err != nil {
		return nil, AccountZero, AccountZero, err
	}
	wallet, err := RetrieveWallet()
	if err != nil {
		return nil, AccountZero, AccountZero, err
	}
	for _, address := range wallet.Addresses() {
		if address != sender {
			return client, sender, address, nil
		}
	}
	return nil, AccountZero, AccountZero, errors.Wrap(ErrConfig, "no recipient address distinct from the sender")
}
