package gitrepo

import (
	"fmt"
	"strings"
)

const (
	sshProtocolPrefixConstant           = "ssh://"
	sshUserDelimiterConstant            = "@"
	sshPathDelimiterConstant            = ":"
	httpsProtocolPrefixConstant         = "https://"
	gitUserPrefixConstant               = "git@"
	pathSeparatorConstant               = "/"
	gitSuffixConstant                   = ".git"
	sshRemoteTemplateConstant           = "git@%s:%s/%s.git"
	httpsRemoteTemplateConstant         = "https://%s/%s/%s.git"
	remoteURLParseErrorTemplateConstant = "%s: %s"
	invalidRemoteURLMessageConstant     = "invalid remote url"
	unknownProtocolMessageConstant      = "unsupported remote protocol"
	requiredValueMessageConstant        = "value is required"
)

// RemoteProtocol enumerates supported git remote protocols.
type RemoteProtocol string

// Supported remote protocols.
const (
	RemoteProtocolSSH   RemoteProtocol = RemoteProtocol("ssh")
	RemoteProtocolHTTPS RemoteProtocol = RemoteProtocol("https")
)

// RemoteURL represents a structured git remote URL.
type RemoteURL struct {
	Protocol   RemoteProtocol
	Host       string
	Owner      string
	Repository string
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// UnsupportedProtocolError indicates the provided protocol cannot be formatted.
type UnsupportedProtocolError struct {
	Protocol RemoteProtocol
}

// Error describes the unsupported protocol.
func (protocolError UnsupportedProtocolError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, protocolError.Protocol, unknownProtocolMessageConstant)
}

// ParseRemoteURL converts a textual remote URL into a structured
// representation. The scp-like git@host:owner/repo form, the ssh:// form, and
// the https:// form are accepted.
func ParseRemoteURL(remoteAddress string) (RemoteURL, error) {
	trimmedAddress := strings.TrimSpace(remoteAddress)
	if len(trimmedAddress) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remoteAddress, Message: requiredValueMessageConstant}
	}

	switch {
	case strings.HasPrefix(trimmedAddress, sshProtocolPrefixConstant):
		return parseSSHRemote(strings.TrimPrefix(trimmedAddress, sshProtocolPrefixConstant))
	case strings.HasPrefix(trimmedAddress, gitUserPrefixConstant):
		return parseSSHRemote(trimmedAddress)
	case strings.HasPrefix(trimmedAddress, httpsProtocolPrefixConstant):
		return parseHTTPSRemote(strings.TrimPrefix(trimmedAddress, httpsProtocolPrefixConstant))
	default:
		return RemoteURL{}, RemoteURLParseError{Input: remoteAddress, Message: invalidRemoteURLMessageConstant}
	}
}

// CanonicalRemoteURL parses a remote URL and renders it back in its canonical
// textual form, so equivalent spellings catalogue identically.
func CanonicalRemoteURL(remoteAddress string) (string, error) {
	parsedRemote, parseError := ParseRemoteURL(remoteAddress)
	if parseError != nil {
		return "", parseError
	}
	return FormatRemoteURL(parsedRemote)
}

// FormatRemoteURL creates a textual remote URL from a structured
// representation. SSH remotes render in the scp-like form.
func FormatRemoteURL(remote RemoteURL) (string, error) {
	for _, requiredField := range []string{remote.Host, remote.Owner, remote.Repository} {
		if len(strings.TrimSpace(requiredField)) == 0 {
			return "", RemoteURLParseError{Input: requiredField, Message: requiredValueMessageConstant}
		}
	}

	switch remote.Protocol {
	case RemoteProtocolSSH:
		return fmt.Sprintf(sshRemoteTemplateConstant, remote.Host, remote.Owner, remote.Repository), nil
	case RemoteProtocolHTTPS:
		return fmt.Sprintf(httpsRemoteTemplateConstant, remote.Host, remote.Owner, remote.Repository), nil
	default:
		return "", UnsupportedProtocolError{Protocol: remote.Protocol}
	}
}

func parseSSHRemote(remoteAddress string) (RemoteURL, error) {
	_, hostAndPath, userFound := strings.Cut(remoteAddress, sshUserDelimiterConstant)
	if !userFound {
		return RemoteURL{}, RemoteURLParseError{Input: remoteAddress, Message: invalidRemoteURLMessageConstant}
	}

	host, repositoryPath, delimiterFound := strings.Cut(hostAndPath, sshPathDelimiterConstant)
	if !delimiterFound {
		host, repositoryPath, delimiterFound = strings.Cut(hostAndPath, pathSeparatorConstant)
		if !delimiterFound {
			return RemoteURL{}, RemoteURLParseError{Input: remoteAddress, Message: invalidRemoteURLMessageConstant}
		}
	}

	owner, repository, pathError := splitOwnerAndRepository(repositoryPath)
	if pathError != nil {
		return RemoteURL{}, pathError
	}

	return RemoteURL{Protocol: RemoteProtocolSSH, Host: host, Owner: owner, Repository: repository}, nil
}

func parseHTTPSRemote(remoteAddress string) (RemoteURL, error) {
	host, repositoryPath, delimiterFound := strings.Cut(remoteAddress, pathSeparatorConstant)
	if !delimiterFound {
		return RemoteURL{}, RemoteURLParseError{Input: remoteAddress, Message: invalidRemoteURLMessageConstant}
	}

	owner, repository, pathError := splitOwnerAndRepository(repositoryPath)
	if pathError != nil {
		return RemoteURL{}, pathError
	}

	return RemoteURL{Protocol: RemoteProtocolHTTPS, Host: host, Owner: owner, Repository: repository}, nil
}

func splitOwnerAndRepository(repositoryPath string) (string, string, error) {
	owner, repositoryName, separatorFound := strings.Cut(repositoryPath, pathSeparatorConstant)
	if !separatorFound || len(owner) == 0 {
		return "", "", RemoteURLParseError{Input: repositoryPath, Message: invalidRemoteURLMessageConstant}
	}

	repository := strings.TrimSuffix(repositoryName, gitSuffixConstant)
	if len(repository) == 0 || strings.Contains(repository, pathSeparatorConstant) {
		return "", "", RemoteURLParseError{Input: repositoryPath, Message: invalidRemoteURLMessageConstant}
	}

	return owner, repository, nil
}
